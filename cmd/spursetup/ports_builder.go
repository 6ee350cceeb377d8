package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spurintel/spursetup/adapters/drivers/splunkd"
	"github.com/spurintel/spursetup/adapters/store/rdb"
	"github.com/spurintel/spursetup/config/setupcfg"
	"github.com/spurintel/spursetup/domain"
	"github.com/spurintel/spursetup/usecase/setup"
)

// loadConfig merges the config file (when present) with command-line flags;
// flags win.
func loadConfig(cmd *cobra.Command) (*setupcfg.Root, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if path == "" {
		path = setupcfg.DefaultConfigPath
	}

	var cfg *setupcfg.Root
	if _, err := os.Stat(path); err == nil {
		cfg, err = setupcfg.Load(path)
		if err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("config file not found: %s", path)
	} else {
		cfg = setupcfg.Default()
	}

	if v, _ := cmd.Flags().GetString("service-url"); v != "" {
		cfg.Service.URL = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPorts creates the collaborator port set for the configured service
// URL: a splunkd client for http(s) endpoints, the sqlite sandbox otherwise.
func buildPorts(cmd *cobra.Command, cfg *setupcfg.Root) (*domain.Ports, error) {
	serviceURL := cfg.Service.URL
	switch {
	case strings.HasPrefix(serviceURL, "http://"), strings.HasPrefix(serviceURL, "https://"):
		opts := []splunkd.Option{splunkd.WithTimeout(cfg.Service.Timeout())}
		if cfg.Service.Token != "" {
			opts = append(opts, splunkd.WithSessionToken(cfg.Service.Token))
		} else {
			opts = append(opts, splunkd.WithBasicAuth(cfg.Service.Username, cfg.Service.Password))
		}
		if cfg.Service.Proxy != "" {
			proxyURL, err := url.Parse(cfg.Service.Proxy)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy URL: %w", err)
			}
			opts = append(opts, splunkd.WithProxy(proxyURL))
		}
		client, err := splunkd.New(serviceURL, cfg.App.Name, opts...)
		if err != nil {
			return nil, err
		}
		return client.Ports(), nil
	case strings.HasPrefix(serviceURL, "sqlite:"), strings.HasPrefix(serviceURL, "sqlite3:"):
		store, err := rdb.NewStore(cmd.Context(), serviceURL)
		if err != nil {
			return nil, err
		}
		return store.Ports(), nil
	default:
		return nil, fmt.Errorf("unsupported service URL: %s", serviceURL)
	}
}

// buildUseCase wires the orchestrator from config.
func buildUseCase(cmd *cobra.Command, cfg *setupcfg.Root) (*setup.UseCase, error) {
	ports, err := buildPorts(cmd, cfg)
	if err != nil {
		return nil, err
	}
	u := setup.New(ports,
		setup.WithSkipWhenConfigured(cfg.Setup.SkipWhenConfigured),
		setup.WithCallTimeout(cfg.Service.Timeout()),
	)
	u.AppName = cfg.App.Name
	u.HomePath = cfg.App.HomePath
	u.RedirectDelay = cfg.App.RedirectDelay()
	return u, nil
}
