// Package session owns the single remote browser session shared by a test
// run.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/tebeka/selenium"

	"github.com/testinium/steps/actions"
)

// Driver is the part of selenium.WebDriver the steps use.
type Driver interface {
	SessionID() string
	Capabilities() (selenium.Capabilities, error)
	Get(url string) error
	CurrentURL() (string, error)
	FindElement(by, value string) (selenium.WebElement, error)
	ExecuteScript(script string, args []interface{}) (interface{}, error)
	Quit() error
	actions.LegacyDriver
}

// DialFunc opens a remote session at endpoint.
type DialFunc func(ctx context.Context, caps selenium.Capabilities, endpoint string) (Driver, error)

// Initializer is run once a session is established. *elements.Repository
// implements it.
type Initializer interface {
	Init()
}

var (
	// ErrSetup wraps every failure to establish the session.
	ErrSetup = errors.New("failed to initialize remote WebDriver session")
	// ErrActive is returned by Setup when a session is already active.
	ErrActive = errors.New("a session is already active")
	// ErrClosed is returned by Setup after Teardown.
	ErrClosed = errors.New("session manager is closed")
)

// State is the lifecycle stage of a Manager.
type State int

const (
	Uninitialized State = iota
	Active
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Active:
		return "active"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is an established remote browser session.
type Session struct {
	ID       string
	Endpoint string
	Driver   Driver
	// Actions is the interaction helper bound to Driver.
	Actions *actions.Chain

	BrowserName    string
	BrowserVersion *semver.Version
}

// Manager creates and tears down the session. It moves from Uninitialized to
// Active on a successful Setup and to Closed on Teardown; a closed manager
// cannot be reused.
type Manager struct {
	dial     DialFunc
	elements Initializer
	w3c      bool
	client   *http.Client

	mu      sync.Mutex
	state   State
	current *Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces selenium.NewRemote.
func WithDialer(dial DialFunc) Option {
	return func(m *Manager) { m.dial = dial }
}

// WithElements registers the element repository initialized during Setup.
func WithElements(elements Initializer) Option {
	return func(m *Manager) { m.elements = elements }
}

// WithW3CActions selects W3C action sequences (the default) or the legacy
// wire protocol mouse commands for the session's action chain.
func WithW3CActions(enabled bool) Option {
	return func(m *Manager) { m.w3c = enabled }
}

// WithHTTPClient sets the client used to send action sequences.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// NewManager returns a Manager with no session.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		dial: dialRemote,
		w3c:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func dialRemote(_ context.Context, caps selenium.Capabilities, endpoint string) (Driver, error) {
	return selenium.NewRemote(caps, endpoint)
}

// Setup establishes the session and initializes the element repository. There
// is no retry: a failure is final for this manager's Setup attempt and is
// wrapped in ErrSetup.
func (m *Manager) Setup(ctx context.Context, endpoint string, caps selenium.Capabilities) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case Active:
		return nil, ErrActive
	case Closed:
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	glog.Infof("Initializing remote WebDriver session at %s", endpoint)
	wd, err := m.dial(ctx, caps, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSetup, endpoint, err)
	}

	s := &Session{
		ID:       wd.SessionID(),
		Endpoint: endpoint,
		Driver:   wd,
	}
	if m.w3c {
		s.Actions = actions.New(actions.NewRemotePerformer(endpoint, s.ID, m.client))
	} else {
		s.Actions = actions.NewLegacy(wd)
	}
	s.describe()

	if m.elements != nil {
		m.elements.Init()
	}

	m.current = s
	m.state = Active
	glog.Infof("WebDriver initialized successfully. Remote URL: %s, session: %s, browser: %s %v", endpoint, s.ID, s.BrowserName, s.BrowserVersion)
	return s, nil
}

// describe fills the browser name and version from the negotiated
// capabilities. Failures are logged and leave the fields empty.
func (s *Session) describe() {
	caps, err := s.Driver.Capabilities()
	if err != nil {
		glog.Warningf("Reading capabilities of session %s: %v", s.ID, err)
		return
	}
	s.BrowserName, _ = caps["browserName"].(string)

	raw, _ := caps["browserVersion"].(string)
	if raw == "" {
		raw, _ = caps["version"].(string)
	}
	if raw == "" {
		return
	}
	v, err := ParseVersion(raw)
	if err != nil {
		glog.Warningf("Unparseable browser version %q: %v", raw, err)
		return
	}
	s.BrowserVersion = &v
}

// ParseVersion parses a browser version such as "120.0.6099.109". Components
// past the patch number are dropped.
func ParseVersion(raw string) (semver.Version, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.ParseTolerant(strings.Join(parts, "."))
}

// Teardown quits the session if there is one. It is safe to call repeatedly;
// only the first call after a successful Setup talks to the remote end.
func (m *Manager) Teardown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	s := m.current
	m.current = nil
	m.state = Closed

	glog.Infof("Quitting WebDriver session %s", s.ID)
	if err := s.Driver.Quit(); err != nil {
		return fmt.Errorf("quitting session %s: %w", s.ID, err)
	}
	return nil
}

// Current returns the active session.
func (m *Manager) Current() (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// State returns the lifecycle stage.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
