package steps

import (
	"context"

	"github.com/cucumber/godog"
	"github.com/golang/glog"
	"github.com/spf13/afero"
	"github.com/tebeka/selenium"

	"github.com/testinium/steps/config"
	"github.com/testinium/steps/elements"
	"github.com/testinium/steps/session"
)

// Suite wires the element repository, the session manager and the steps to
// a godog test suite.
type Suite struct {
	cfg      config.Config
	caps     selenium.Capabilities
	endpoint string

	fs    afero.Fs
	dial  session.DialFunc
	fatal func(format string, args ...interface{})

	elements *elements.Repository
	sessions *session.Manager
	steps    *Steps
}

// SuiteOption configures a Suite.
type SuiteOption func(*Suite)

// WithFatal replaces glog.Exitf as the handler for a failed BeforeSuite.
func WithFatal(f func(format string, args ...interface{})) SuiteOption {
	return func(s *Suite) { s.fatal = f }
}

// WithDialer replaces selenium.NewRemote for the suite's session.
func WithDialer(dial session.DialFunc) SuiteOption {
	return func(s *Suite) { s.dial = dial }
}

// WithFs reads element definitions from fs instead of the resource root.
func WithFs(fs afero.Fs) SuiteOption {
	return func(s *Suite) { s.fs = fs }
}

// NewSuite builds a suite from cfg.
func NewSuite(cfg config.Config, opts ...SuiteOption) (*Suite, error) {
	caps, err := session.Capabilities(cfg)
	if err != nil {
		return nil, err
	}
	s := &Suite{
		cfg:      cfg,
		caps:     caps,
		endpoint: session.Endpoint(cfg),
		fatal:    glog.Exitf,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = elements.OsFs(cfg.ResourceRoot)
	}

	s.elements = elements.New(s.fs, cfg.ElementDir)
	mopts := []session.Option{
		session.WithElements(s.elements),
		session.WithW3CActions(cfg.W3CActions),
	}
	if s.dial != nil {
		mopts = append(mopts, session.WithDialer(s.dial))
	}
	s.sessions = session.NewManager(mopts...)
	s.steps = New(s.elements, s.sessions,
		WithTimeout(cfg.ElementTimeout),
		WithPollInterval(cfg.PollInterval),
	)
	return s, nil
}

// Elements returns the suite's element repository.
func (s *Suite) Elements() *elements.Repository { return s.elements }

// Sessions returns the suite's session manager.
func (s *Suite) Sessions() *session.Manager { return s.sessions }

// Steps returns the suite's step implementations.
func (s *Suite) Steps() *Steps { return s.steps }

// Setup opens the browser session.
func (s *Suite) Setup(ctx context.Context) error {
	glog.Info("========== BeforeSuite: initializing remote WebDriver ==========")
	_, err := s.sessions.Setup(ctx, s.endpoint, s.caps)
	return err
}

// Teardown quits the browser session.
func (s *Suite) Teardown() error {
	glog.Info("========== AfterSuite: quitting WebDriver ==========")
	return s.sessions.Teardown()
}

// InitializeTestSuite registers the session lifecycle hooks. A failed setup
// is fatal for the run.
func (s *Suite) InitializeTestSuite(tsc *godog.TestSuiteContext) {
	tsc.BeforeSuite(func() {
		if err := s.Setup(context.Background()); err != nil {
			s.fatal("%v", err)
		}
	})
	tsc.AfterSuite(func() {
		if err := s.Teardown(); err != nil {
			glog.Errorf("Teardown failed: %v", err)
		}
	})
}

// InitializeScenario registers the step vocabulary.
func (s *Suite) InitializeScenario(sc *godog.ScenarioContext) {
	s.steps.Register(sc)
}

// Run runs the features selected by opts and returns godog's exit status.
func (s *Suite) Run(opts godog.Options) int {
	return godog.TestSuite{
		Name:                 "webui",
		TestSuiteInitializer: s.InitializeTestSuite,
		ScenarioInitializer:  s.InitializeScenario,
		Options:              &opts,
	}.Run()
}
