// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the wifimgr configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/u-root/wifimgr/pkg/wifi"
	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order:
// ./wifimgr.yaml, ~/.config/wifimgr/config.yaml, /etc/wifimgr/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"wifimgr.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wifimgr", "config.yaml"))
	}
	return append(paths, "/etc/wifimgr/config.yaml")
}

// FindConfig locates a config file. An explicit path must exist.
// Otherwise the first of DefaultSearchPaths that exists is returned, or
// "" if none does.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}
	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// Config holds all wifimgr settings.
type Config struct {
	NmcliPath  string `yaml:"nmcli_path"`
	TimeoutSec int    `yaml:"timeout_sec"`
	// Interface pins scan and connect to one device. Empty lets the tool pick.
	Interface string `yaml:"interface"`
	// Rescan forces a fresh scan instead of the tool's cached list.
	Rescan bool `yaml:"rescan"`
	// Accumulate appends each scan to the previous results.
	Accumulate         bool   `yaml:"accumulate"`
	MinSignal          int    `yaml:"min_signal"`
	TopN               int    `yaml:"top_n"`
	PreferredBand      string `yaml:"preferred_band"`
	PrivilegeProbePath string `yaml:"privilege_probe_path"`
	Prompt             string `yaml:"prompt"` // line or ui
	LogLevel           string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		NmcliPath:          "nmcli",
		TimeoutSec:         15,
		MinSignal:          wifi.DefaultMinSignal,
		TopN:               wifi.DefaultTopN,
		PreferredBand:      "5G",
		PrivilegeProbePath: wifi.DefaultProbePath,
		Prompt:             "line",
		LogLevel:           "info",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("timeout_sec must be positive, got %d", c.TimeoutSec)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.MinSignal < 0 || c.MinSignal > 100 {
		return fmt.Errorf("min_signal must be within 0-100, got %d", c.MinSignal)
	}
	if _, err := wifi.ParseBand(c.PreferredBand); err != nil {
		return fmt.Errorf("preferred_band: %w", err)
	}
	switch c.Prompt {
	case "line", "ui":
	default:
		return fmt.Errorf("prompt must be line or ui, got %q", c.Prompt)
	}
	return nil
}

// Timeout is TimeoutSec as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Policy is the candidate selection policy.
func (c *Config) Policy() wifi.Policy {
	return wifi.Policy{MinSignal: c.MinSignal, TopN: c.TopN}
}
