// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global merchgroup configuration.
// It uses $XDG_CONFIG_HOME/merchgroup if set, otherwise ~/.config/merchgroup.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "merchgroup")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "merchgroup")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, err := loadYAML(GlobalConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Resolve layers the built-in defaults, the global config and the config in
// dir, later layers winning.
func Resolve(dir string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}
	repo, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return Layer(Layer(Defaults(), global), repo), nil
}
