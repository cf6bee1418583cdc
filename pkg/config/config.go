// Package config provides configuration loading for the console.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultLogLevel     = "info"
	DefaultRefreshDelay = 2 * time.Second
	DefaultRunSample    = 10
)

// Config holds the client-side settings of the console.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	StateDir     string        `yaml:"state_dir"`
	LogLevel     string        `yaml:"log_level"`
	RefreshDelay time.Duration `yaml:"refresh_delay"`
	RunSample    int           `yaml:"run_sample"`
}

// Default returns the configuration used when no file is present. The state
// directory defaults to ~/.integron (falling back to the working directory
// when the home directory cannot be resolved).
func Default() Config {
	stateDir := ".integron"
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = home + "/.integron"
	}

	return Config{
		BaseURL:      DefaultBaseURL,
		StateDir:     stateDir,
		LogLevel:     DefaultLogLevel,
		RefreshDelay: DefaultRefreshDelay,
		RunSample:    DefaultRunSample,
	}
}

// Load reads configuration from a YAML file, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return cfg, cfg.Validate()
}

// LoadOrDefault attempts to load configuration from a file, falling back to
// defaults when the file does not exist or cannot be parsed.
func LoadOrDefault(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}

	return cfg
}

// Validate checks the configuration for values the console cannot work with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}

	if c.RefreshDelay < 0 {
		return fmt.Errorf("refresh_delay must not be negative")
	}

	if c.RunSample <= 0 {
		return fmt.Errorf("run_sample must be positive")
	}

	return nil
}
