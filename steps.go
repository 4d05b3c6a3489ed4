package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/testinium/steps/elements"
	"github.com/testinium/steps/session"
)

// Defaults for the element presence wait.
const (
	DefaultTimeout      = 60 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// scrollIntoView centres arguments[0] in the viewport.
const scrollIntoView = "arguments[0].scrollIntoView({behavior: 'smooth', block: 'center', inline: 'center'})"

var (
	// ErrNoSession is returned when a step runs without an active session.
	ErrNoSession = errors.New("no active browser session")
	// ErrUnknownElement is returned for keys with no locator in the
	// repository.
	ErrUnknownElement = errors.New("no locator for element key")
	// ErrInvalidLocator is returned for locators whose type has no query
	// strategy.
	ErrInvalidLocator = errors.New("invalid locator type")
	// ErrInterrupted is returned when a wait is canceled.
	ErrInterrupted = errors.New("wait interrupted")
)

// AssertionError is a test-level failure: the step ran but the page did not
// match the expectation.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return e.Message }

func failf(format string, args ...interface{}) error {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// IsAssertion reports whether err is a test-level failure rather than a
// fatal error.
func IsAssertion(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}

// Locators resolves element keys. *elements.Repository implements it.
type Locators interface {
	Lookup(key string) (elements.Locator, bool)
}

// SessionProvider hands out the active session. *session.Manager implements
// it.
type SessionProvider interface {
	Current() (*session.Session, bool)
}

// Steps implements the UI step vocabulary against the active session.
type Steps struct {
	elements Locators
	sessions SessionProvider
	timeout  time.Duration
	poll     time.Duration
}

// Option configures Steps.
type Option func(*Steps)

// WithTimeout bounds the wait for an element to be present.
func WithTimeout(d time.Duration) Option {
	return func(s *Steps) { s.timeout = d }
}

// WithPollInterval sets the delay between presence checks.
func WithPollInterval(d time.Duration) Option {
	return func(s *Steps) { s.poll = d }
}

// New returns Steps resolving keys through locators and driving the session
// handed out by sessions.
func New(locators Locators, sessions SessionProvider, opts ...Option) *Steps {
	s := &Steps{
		elements: locators,
		sessions: sessions,
		timeout:  DefaultTimeout,
		poll:     DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Steps) session() (*session.Session, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Navigate loads url in the browser.
func (s *Steps) Navigate(ctx context.Context, url string) error {
	sess, err := s.session()
	if err != nil {
		return err
	}
	if err := sess.Driver.Get(url); err != nil {
		return fmt.Errorf("navigating to %q: %w", url, err)
	}
	glog.Infof("Navigated to %s", url)
	return nil
}

// AssertCurrentURL checks that the browser is at exactly url.
func (s *Steps) AssertCurrentURL(ctx context.Context, url string) error {
	sess, err := s.session()
	if err != nil {
		return err
	}
	current, err := sess.Driver.CurrentURL()
	if err != nil {
		return fmt.Errorf("reading current url: %w", err)
	}
	if current != url {
		return failf("current url is %q, want %q", current, url)
	}
	glog.Infof("Current url matches %s", url)
	return nil
}

// WaitSeconds blocks for n seconds. Cancellation of ctx ends the wait with
// ErrInterrupted.
func (s *Steps) WaitSeconds(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("negative wait of %d seconds", n)
	}
	if int64(n) > math.MaxInt64/int64(time.Second) {
		return fmt.Errorf("wait of %d seconds is too long", n)
	}
	glog.Infof("Waiting %d seconds", n)
	t := time.NewTimer(time.Duration(n) * time.Second)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

// AssertElementVisible waits for the element named key to be present and
// checks that it is displayed.
func (s *Steps) AssertElementVisible(ctx context.Context, key string) error {
	sess, err := s.session()
	if err != nil {
		return err
	}
	el, err := s.findElement(ctx, sess, key)
	if err != nil {
		return err
	}
	displayed, err := el.IsDisplayed()
	if err != nil {
		return fmt.Errorf("checking visibility of %q: %w", key, err)
	}
	if !displayed {
		return failf("element %q is present but not displayed", key)
	}
	glog.Infof("Element %s is visible", key)
	return nil
}

// ClickElement hovers over and clicks the element named key. An empty key
// does nothing.
func (s *Steps) ClickElement(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	sess, err := s.session()
	if err != nil {
		return err
	}

	el, err := s.findElement(ctx, sess, key)
	if err != nil {
		return err
	}
	if err := sess.Actions.MoveToElement(el).Perform(ctx); err != nil {
		return fmt.Errorf("hovering over %q: %w", key, err)
	}

	// Resolved again for the click.
	el, err = s.findElement(ctx, sess, key)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("clicking %q: %w", key, err)
	}
	glog.Infof("Clicked element %s", key)
	return nil
}

// notFound reports whether err is the remote end's "no such element" reply.
// Only that error keeps the presence wait polling.
func notFound(err error) bool {
	var se *selenium.Error
	return errors.As(err, &se) && se.Err == "no such element"
}

// findElement resolves key, waits for the element to be present and scrolls
// it into the centre of the viewport.
func (s *Steps) findElement(ctx context.Context, sess *session.Session, key string) (selenium.WebElement, error) {
	loc, ok := s.elements.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, key)
	}
	q := loc.Query()
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocator, loc)
	}

	var (
		el      selenium.WebElement
		lastErr error
	)
	err := wait.PollUntilContextTimeout(ctx, s.poll, s.timeout, true, func(context.Context) (bool, error) {
		found, err := sess.Driver.FindElement(q.By, q.Value)
		if notFound(err) {
			lastErr = err
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("finding %q: %w", key, err)
		}
		el = found
		return true, nil
	})
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, fmt.Errorf("%w: waiting for %q: %w", ErrInterrupted, key, ctx.Err())
	case wait.Interrupted(err):
		return nil, failf("element %q (%s) not present after %v: %v", key, q, s.timeout, lastErr)
	default:
		return nil, err
	}

	if _, err := sess.Driver.ExecuteScript(scrollIntoView, []interface{}{el}); err != nil {
		return nil, fmt.Errorf("scrolling %q into view: %w", key, err)
	}
	return el, nil
}
