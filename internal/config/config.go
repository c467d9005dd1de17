// Package config provides configuration management for bookingctl.
// It handles loading and saving user preferences such as the default
// service port and the preferred package manager.
//
// Configuration is stored in JSON format at ~/.bookingctl.json and is
// layered under environment variables (BOOKING_PORT, BOOKING_PM) parsed
// with caarlos0/env. Command-line flags always win. A missing file is
// not an error; the tool works with built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultPort is used when neither flag, environment, nor config file
// names a port.
const DefaultPort = 3001

// Config holds user preferences for the launcher.
type Config struct {
	DefaultPort    int      `json:"default_port,omitempty"`
	PackageManager string   `json:"package_manager,omitempty"`
	WatchIgnore    []string `json:"watch_ignore,omitempty"`
}

// Env holds overrides read from the process environment.
type Env struct {
	Port           int    `env:"BOOKING_PORT"`
	PackageManager string `env:"BOOKING_PM"`
}

// Path returns the absolute path to the configuration file (~/.bookingctl.json).
func Path() string {
	home := os.Getenv("HOME")
	if home == "" {
		if wd, _ := os.Getwd(); wd != "" {
			return filepath.Join(wd, ".bookingctl.json")
		}
	}
	return filepath.Join(home, ".bookingctl.json")
}

// Load reads configuration from disk. If missing, returns an empty config and nil error.
func Load() (*Config, error) {
	var cfg Config
	p := Path()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &Config{}, nil // treat parse issues as empty config (non-fatal)
	}
	return &cfg, nil
}

// Save writes configuration to disk.
func Save(cfg *Config) error {
	p := Path()
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o644)
}

// LoadEnv parses environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// ResolvePort applies the precedence flag > env > file > default. flagSet
// reports whether --port was given explicitly.
func ResolvePort(flagValue int, flagSet bool, cfg *Config, envCfg Env) int {
	if flagSet {
		return flagValue
	}
	if envCfg.Port > 0 {
		return envCfg.Port
	}
	if cfg != nil && cfg.DefaultPort > 0 {
		return cfg.DefaultPort
	}
	return DefaultPort
}

// ResolvePackageManager applies the precedence env > file > detected.
func ResolvePackageManager(detected string, cfg *Config, envCfg Env) string {
	if envCfg.PackageManager != "" {
		return envCfg.PackageManager
	}
	if cfg != nil && cfg.PackageManager != "" {
		return cfg.PackageManager
	}
	return detected
}
