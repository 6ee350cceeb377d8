// Package setupcfg defines the configuration schema (structs) for
// spursetup.yml. This package is intended for YAML -> struct
// deserialization; loading and validation live in separate files.
package setupcfg

import "time"

// DefaultConfigPath is where the CLI looks for configuration by default.
const DefaultConfigPath = "spursetup.yml"

// Root is the root structure of spursetup.yml.
type Root struct {
	Version string  `yaml:"version"`
	Service Service `yaml:"service"`
	App     App     `yaml:"app"`
	Setup   Setup   `yaml:"setup"`
	UI      UI      `yaml:"ui"`
	Logging Logging `yaml:"logging"`
}

// Service locates the host platform management endpoint.
type Service struct {
	// URL is the splunkd management endpoint (https://host:8089) or a
	// sandbox URL (sqlite:/path/to.db | sqlite::memory:).
	URL      string `yaml:"url"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	// Token is a splunkd session/bearer token; takes precedence over
	// username/password when set.
	Token string `yaml:"token,omitempty"`
	// Proxy overrides HTTP_PROXY/HTTPS_PROXY for management calls.
	Proxy string `yaml:"proxy,omitempty"`
	// TimeoutSeconds bounds each management call. 0 means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// App identifies the add-on registration owning the setup flow.
type App struct {
	Name string `yaml:"name,omitempty"`
	// HomePath is the redirect target after completion.
	HomePath string `yaml:"home_path,omitempty"`
	// RedirectDelayMS is how long the surface waits before navigating.
	RedirectDelayMS int `yaml:"redirect_delay_ms,omitempty"`
}

// Setup holds policy knobs for the bootstrap flow.
type Setup struct {
	// SkipWhenConfigured hides the setup entry point once the configured
	// flag is set.
	SkipWhenConfigured bool `yaml:"skip_when_configured"`
}

// UI configures the serve-mode display surface.
type UI struct {
	Listen string `yaml:"listen,omitempty"` // e.g. "127.0.0.1:8642"
}

// Logging selects the log output format.
type Logging struct {
	Format string `yaml:"format,omitempty"` // human|text|json
}

// Timeout returns the per-call timeout as a duration.
func (s *Service) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RedirectDelay returns the redirect delay as a duration.
func (a *App) RedirectDelay() time.Duration {
	if a.RedirectDelayMS <= 0 {
		return 800 * time.Millisecond
	}
	return time.Duration(a.RedirectDelayMS) * time.Millisecond
}
