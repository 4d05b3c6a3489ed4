package session

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/log"
	"github.com/tebeka/selenium/sauce"

	"github.com/testinium/steps/config"
)

// KeyCapability carries the Testinium key to the grid.
const KeyCapability = "testinium:key"

var logLevels = map[log.Level]bool{
	log.Off:     true,
	log.Severe:  true,
	log.Warning: true,
	log.Info:    true,
	log.Debug:   true,
	log.All:     true,
}

// Capabilities returns the Chrome capabilities requested from the grid.
func Capabilities(cfg config.Config) (selenium.Capabilities, error) {
	caps := selenium.Capabilities{
		"browserName": "chrome",
		KeyCapability: cfg.TestiniumKey,
	}

	prefs := make(map[string]interface{}, len(cfg.ChromePrefs))
	for k, v := range cfg.ChromePrefs {
		prefs[k] = v
	}
	caps.AddChrome(chrome.Capabilities{
		Args:  append([]string(nil), cfg.ChromeArgs...),
		Prefs: prefs,
	})

	if cfg.BrowserLogLevel != "" {
		level := log.Level(strings.ToUpper(cfg.BrowserLogLevel))
		if !logLevels[level] {
			return nil, fmt.Errorf("unknown browser log level %q", cfg.BrowserLogLevel)
		}
		caps.SetLogLevel(log.Browser, level)
	}
	return caps, nil
}

// Endpoint returns the remote end to dial: Sauce Labs when credentials are
// configured, the configured remote URL otherwise.
func Endpoint(cfg config.Config) string {
	if cfg.Sauce() {
		glog.Infof("Using Sauce Labs as user %s", cfg.SauceUser)
		return sauce.Addr(cfg.SauceUser, cfg.SauceAccessKey)
	}
	return cfg.RemoteURL
}
