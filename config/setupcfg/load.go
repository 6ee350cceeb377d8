package setupcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spurintel/spursetup/domain/model"
)

// Load reads a YAML file from the given path and returns a deserialized
// Root with defaults applied. Validation is handled elsewhere.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Root {
	cfg := &Root{}
	cfg.applyDefaults()
	return cfg
}

func (r *Root) applyDefaults() {
	if r.App.Name == "" {
		r.App.Name = model.DefaultAppName
	}
	if r.App.HomePath == "" {
		r.App.HomePath = model.DefaultHomePath
	}
	if r.UI.Listen == "" {
		r.UI.Listen = "127.0.0.1:8642"
	}
	if r.Logging.Format == "" {
		r.Logging.Format = "human"
	}
}
