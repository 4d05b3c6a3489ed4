// Package config resolves the suite configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"
)

// Defaults for the documented environment variables.
const (
	DefaultRemoteURL    = "http://172.25.1.110:4444/wd/hub"
	DefaultTestiniumKey = "varsayilan_deger"
)

// Defaults for the element wait.
const (
	DefaultElementTimeout = 60 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
)

const redacted = "REDACTED"

// DefaultChromeArgs are passed to every Chrome session unless overridden.
var DefaultChromeArgs = []string{
	"disable-translate",
	"--disable-notifications",
	"--disable-web-security",
	"--allow-running-insecure-content",
	"--allow-cross-origin-auth-prompt",
}

// Config is the resolved suite configuration.
type Config struct {
	// RemoteURL is the Selenium grid endpoint.
	RemoteURL string `yaml:"remote_url" envconfig:"SELENIUM_REMOTE_URL"`
	// TestiniumKey is sent as the "testinium:key" capability.
	TestiniumKey string `yaml:"testinium_key" envconfig:"TESTINIUM_KEY"`

	// ResourceRoot is the directory element paths are resolved against. Empty
	// means the working directory.
	ResourceRoot string `yaml:"resource_root" envconfig:"WEBUI_RESOURCE_ROOT"`
	// ElementDir holds the element definition files, relative to
	// ResourceRoot.
	ElementDir string `yaml:"element_dir" envconfig:"WEBUI_ELEMENT_DIR"`

	// ElementTimeout bounds the wait for an element to be present.
	ElementTimeout time.Duration `yaml:"element_timeout" envconfig:"WEBUI_ELEMENT_TIMEOUT"`
	// PollInterval is the delay between presence checks.
	PollInterval time.Duration `yaml:"poll_interval" envconfig:"WEBUI_POLL_INTERVAL"`

	// W3CActions selects W3C action sequences for hover and other pointer
	// actions. When false, the legacy wire protocol commands are used.
	W3CActions bool `yaml:"w3c_actions" envconfig:"WEBUI_W3C_ACTIONS"`

	ChromeArgs  []string               `yaml:"chrome_args" envconfig:"WEBUI_CHROME_ARGS"`
	ChromePrefs map[string]interface{} `yaml:"chrome_prefs" ignored:"true"`
	// BrowserLogLevel, when set, enables browser log collection at that
	// level (OFF, SEVERE, WARNING, INFO, DEBUG, ALL).
	BrowserLogLevel string `yaml:"browser_log_level" envconfig:"WEBUI_BROWSER_LOG_LEVEL"`

	// SauceUser and SauceAccessKey, when both set, direct the session to Sauce
	// Labs instead of RemoteURL.
	SauceUser      string `yaml:"sauce_user" envconfig:"SAUCE_USERNAME"`
	SauceAccessKey string `yaml:"sauce_access_key" envconfig:"SAUCE_ACCESS_KEY"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RemoteURL:      DefaultRemoteURL,
		TestiniumKey:   DefaultTestiniumKey,
		ElementDir:     "elementValues",
		ElementTimeout: DefaultElementTimeout,
		PollInterval:   DefaultPollInterval,
		W3CActions:     true,
		ChromeArgs:     append([]string(nil), DefaultChromeArgs...),
		ChromePrefs:    map[string]interface{}{},
	}
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// warnUnset lists the variables whose absence is reported.
var warnUnset = []string{"SELENIUM_REMOTE_URL", "TESTINIUM_KEY"}

// Load resolves the configuration. path names an optional YAML file; an
// empty path skips it. A nil lookup reads the process environment. Blank
// environment values are treated as unset.
func Load(path string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	}

	trimmed := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
	if err := envconfig.Process("", &cfg, trimmed); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	for _, key := range warnUnset {
		if _, ok := trimmed(key); !ok {
			glog.Warningf("Environment variable %q is not set. Using configured value.", key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.RemoteURL)
	if err != nil {
		return fmt.Errorf("invalid remote URL %q: %w", c.RemoteURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("remote URL %q must be absolute, e.g. http://host:4444/wd/hub", c.RemoteURL)
	}
	if c.ElementDir == "" {
		return errors.New("element directory must not be empty")
	}
	if c.ElementTimeout <= 0 {
		return fmt.Errorf("element timeout must be positive, got %v", c.ElementTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	if (c.SauceUser == "") != (c.SauceAccessKey == "") {
		return errors.New("sauce user and access key must be set together")
	}
	return nil
}

// Sauce reports whether Sauce Labs credentials are configured.
func (c Config) Sauce() bool {
	return c.SauceUser != "" && c.SauceAccessKey != ""
}

// Redacted returns a copy of c with the Sauce Labs access key masked, for
// display.
func (c Config) Redacted() Config {
	if c.SauceAccessKey != "" {
		c.SauceAccessKey = redacted
	}
	return c
}

// YAML returns the configuration in the file format Load reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
