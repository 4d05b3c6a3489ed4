package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"github.com/testinium/steps/config"
	"github.com/testinium/steps/internal/fakewd"
	"github.com/testinium/steps/session"
)

const loginFeature = `Feature: login page

  Scenario: open the login form
    Given "https://example.com/" adresine git
    Then Şu anki url "https://example.com/" ile aynı mı
    And "loginButton" elementinin görünür olması kontrol edilir
    When Click to element "loginButton"
    And 0 saniye bekle
`

func testConfig() config.Config {
	cfg := config.Default()
	cfg.W3CActions = false
	cfg.ElementTimeout = 200 * time.Millisecond
	cfg.PollInterval = 5 * time.Millisecond
	return cfg
}

func elementsFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "elementValues/login.json", []byte(loginLocators), 0644))
	return fs
}

func runFeature(s *Suite, feature string) (int, string) {
	var out bytes.Buffer
	status := s.Run(godog.Options{
		Format: "progress",
		Output: &out,
		Strict: true,
		FeatureContents: []godog.Feature{
			{Name: "login.feature", Contents: []byte(feature)},
		},
	})
	return status, out.String()
}

func TestSuiteRun(t *testing.T) {
	wd := fakewd.New("suite-session")
	el := fakewd.NewElement("login-el", true)
	wd.Place(selenium.ByCSSSelector, "#login", el, 0)

	var gotCaps selenium.Capabilities
	var gotEndpoint string
	dial := func(_ context.Context, caps selenium.Capabilities, endpoint string) (session.Driver, error) {
		gotCaps, gotEndpoint = caps, endpoint
		return wd, nil
	}
	s, err := NewSuite(testConfig(), WithFs(elementsFs(t)), WithDialer(dial))
	require.NoError(t, err)

	status, out := runFeature(s, loginFeature)
	require.Equal(t, 0, status, "godog output:\n%s", out)

	assert.Equal(t, config.DefaultRemoteURL, gotEndpoint)
	assert.Equal(t, config.DefaultTestiniumKey, gotCaps[session.KeyCapability])
	assert.True(t, s.Elements().Initialized())
	assert.Equal(t, []string{"https://example.com/"}, wd.Visited())
	assert.Equal(t, 1, el.Clicks())
	assert.Equal(t, 1, wd.Quits(), "AfterSuite quits the session")
	assert.Equal(t, session.Closed, s.Sessions().State())
}

func TestSuiteFailingStep(t *testing.T) {
	wd := fakewd.New("suite-session")
	dial := func(context.Context, selenium.Capabilities, string) (session.Driver, error) {
		return wd, nil
	}
	s, err := NewSuite(testConfig(), WithFs(elementsFs(t)), WithDialer(dial))
	require.NoError(t, err)

	status, _ := runFeature(s, `Feature: missing element

  Scenario: element never appears
    Given Go to "https://example.com/" address
    Then Element "loginButton" is visible
`)
	assert.NotEqual(t, 0, status)
	assert.Equal(t, 1, wd.Quits(), "AfterSuite runs after failures")
}

func TestSuiteSetupFailure(t *testing.T) {
	var fatal []string
	dial := func(context.Context, selenium.Capabilities, string) (session.Driver, error) {
		return nil, errors.New("connection refused")
	}
	s, err := NewSuite(testConfig(),
		WithFs(elementsFs(t)),
		WithDialer(dial),
		WithFatal(func(format string, args ...interface{}) {
			fatal = append(fatal, fmt.Sprintf(format, args...))
		}),
	)
	require.NoError(t, err)

	status, _ := runFeature(s, loginFeature)
	assert.NotEqual(t, 0, status)
	require.Len(t, fatal, 1)
	assert.Contains(t, fatal[0], "connection refused")
	assert.False(t, s.Elements().Initialized(), "elements load only with a session")
}

func TestNewSuiteInvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.BrowserLogLevel = "loud"
	_, err := NewSuite(cfg)
	assert.Error(t, err)
}
