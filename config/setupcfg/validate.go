package setupcfg

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if err := r.Service.validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if err := r.App.validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

func (s *Service) validate() error {
	if s.URL == "" {
		return fmt.Errorf("url is required")
	}
	switch {
	case strings.HasPrefix(s.URL, "sqlite:"), strings.HasPrefix(s.URL, "sqlite3:"):
		return nil
	case strings.HasPrefix(s.URL, "http://"), strings.HasPrefix(s.URL, "https://"):
	default:
		return fmt.Errorf("unsupported url scheme: %s", s.URL)
	}
	if s.Token == "" && s.Username == "" {
		return fmt.Errorf("either token or username/password is required for %s", s.URL)
	}
	if s.Proxy != "" {
		if _, err := url.Parse(s.Proxy); err != nil {
			return fmt.Errorf("invalid proxy URL: %w", err)
		}
	}
	return nil
}

func (a *App) validate() error {
	if !strings.HasPrefix(a.HomePath, "/") {
		return fmt.Errorf("home_path must be absolute, got %q", a.HomePath)
	}
	return nil
}
