// Copyright (C) The fluxtop authors.
// SPDX-License-Identifier: MIT

package dash

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Config is the optional on-disk configuration, read from
// ~/.fluxtop/config.yaml. Flags override it.
type Config struct {
	Kubeconfig      string `json:"kubeconfig,omitempty"`
	Context         string `json:"context,omitempty"`
	Namespace       string `json:"namespace,omitempty"`
	RefreshInterval int    `json:"refreshInterval,omitempty"`
	FluxPath        string `json:"fluxPath,omitempty"`
}

// DefaultConfig returns the built-in defaults: refresh every 5
// seconds. FluxPath stays empty here so LoadConfig can tell "unset"
// apart from a configured value when applying the env fallback.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 5,
	}
}

// DefaultConfigPath returns ~/.fluxtop/config.yaml.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".fluxtop", "config.yaml")
}

// LoadConfig reads the config file, filling unset fields with
// defaults. A missing file is not an error. The flux binary path
// resolves config file first, then FLUXTOP_FLUX_PATH, then "flux"
// from PATH; the fallback chain applies whether or not a config file
// exists.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Run on defaults.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	if cfg.FluxPath == "" {
		cfg.FluxPath = os.Getenv("FLUXTOP_FLUX_PATH")
	}
	if cfg.FluxPath == "" {
		cfg.FluxPath = "flux"
	}
	return cfg, nil
}
