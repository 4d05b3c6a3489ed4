package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"github.com/testinium/steps"
	"github.com/testinium/steps/internal/fakewd"
	"github.com/testinium/steps/session"
)

const locators = `[
  {"key": "loginButton", "type": "css", "value": "#login"},
  {"key": "searchBox", "type": "name", "value": "q"}
]`

// workspace lays out a resource root with an element directory and a
// features directory.
func workspace(t *testing.T, feature string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "elementValues"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "features"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "elementValues", "login.json"), []byte(locators), 0644))
	if feature != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "features", "login.feature"), []byte(feature), 0644))
	}
	return root
}

func env(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func execute(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "webui", cmd.Use)

	for _, name := range []string{"run", "elements", "config", "steps"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("logtostderr"), "glog flags are exposed")
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	format := run.Flags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "pretty", format.DefValue)
	strict := run.Flags().Lookup("strict")
	require.NotNil(t, strict)
	assert.Equal(t, "true", strict.DefValue)
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, &RootOptions{
		Lookup: env(map[string]string{
			"SELENIUM_REMOTE_URL": "http://grid.local:4444/wd/hub",
			"TESTINIUM_KEY":       "abc",
		}),
	}, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "remote_url: http://grid.local:4444/wd/hub")
	assert.Contains(t, out, "testinium_key: abc")
	assert.Contains(t, out, "element_dir: elementValues")
}

func TestConfigCommandMasksSauceKey(t *testing.T) {
	out, err := execute(t, &RootOptions{
		Lookup: env(map[string]string{
			"SAUCE_USERNAME":   "bob",
			"SAUCE_ACCESS_KEY": "s3cr3t-access-key",
		}),
	}, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "sauce_user: bob")
	assert.NotContains(t, out, "s3cr3t-access-key")
}

func TestConfigCommandInvalid(t *testing.T) {
	_, err := execute(t, &RootOptions{
		Lookup: env(map[string]string{"SELENIUM_REMOTE_URL": "not a url"}),
	}, "config")
	assert.Error(t, err)
}

func TestElementsCommand(t *testing.T) {
	root := workspace(t, "")
	out, err := execute(t, &RootOptions{
		Lookup: env(map[string]string{"WEBUI_RESOURCE_ROOT": root}),
	}, "elements")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^KEY\s+TYPE\s+VALUE$`, out)
	assert.Regexp(t, `(?m)^loginButton\s+css\s+#login$`, out)
	assert.Regexp(t, `(?m)^searchBox\s+name\s+q$`, out)
}

func TestStepsCommand(t *testing.T) {
	out, err := execute(t, &RootOptions{}, "steps")
	require.NoError(t, err)
	assert.Contains(t, out, "click element:")
	assert.Contains(t, out, `^"([^"]*)" elementine tıkla$`)
}

func TestRunCommand(t *testing.T) {
	root := workspace(t, `Feature: login

  Scenario: click login
    Given Go to "https://example.com/" address
    When "loginButton" elementine tıkla
`)
	wd := fakewd.New("cli-session")
	el := fakewd.NewElement("login-el", true)
	wd.Place(selenium.ByCSSSelector, "#login", el, 0)
	dial := func(context.Context, selenium.Capabilities, string) (session.Driver, error) {
		return wd, nil
	}

	opts := &RootOptions{
		Lookup: env(map[string]string{
			"WEBUI_RESOURCE_ROOT": root,
			"WEBUI_W3C_ACTIONS":   "false",
		}),
		SuiteOptions: []steps.SuiteOption{steps.WithDialer(dial)},
	}
	out, err := execute(t, opts, "run", "--format", "progress", filepath.Join(root, "features"))
	require.NoError(t, err, "godog output:\n%s", out)
	assert.Equal(t, 1, el.Clicks())
	assert.Equal(t, 1, wd.Quits())
}

func TestRunCommandFailure(t *testing.T) {
	root := workspace(t, `Feature: login

  Scenario: wrong page
    Given Go to "https://example.com/" address
    Then Current url is "https://example.org/"
`)
	wd := fakewd.New("cli-session")
	dial := func(context.Context, selenium.Capabilities, string) (session.Driver, error) {
		return wd, nil
	}
	opts := &RootOptions{
		Lookup:       env(map[string]string{"WEBUI_RESOURCE_ROOT": root}),
		SuiteOptions: []steps.SuiteOption{steps.WithDialer(dial)},
	}
	_, err := execute(t, opts, "run", "--format", "progress", filepath.Join(root, "features"))
	var exit *ExitError
	require.True(t, errors.As(err, &exit), "want *ExitError, got %v", err)
	assert.NotZero(t, exit.Code)
}
