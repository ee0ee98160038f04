// Package appconfig loads and writes the panemux application configuration.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion     int               `mapstructure:"config_version" yaml:"config_version"`
	StateDir          string            `mapstructure:"state_dir" yaml:"state_dir"`
	DefaultProvider   string            `mapstructure:"default_provider" yaml:"default_provider"`
	Providers         []string          `mapstructure:"providers" yaml:"providers"`
	WidgetPreferences map[string]string `mapstructure:"widget_preferences" yaml:"widget_preferences"`
	Logging           LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() (Config, error) {
	stateDir, err := defaultStateDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion:     CurrentConfigVersion,
		StateDir:          stateDir,
		DefaultProvider:   "terminal",
		Providers:         []string{"terminal", "editor"},
		WidgetPreferences: map[string]string{},
		Logging:           LoggingConfig{Level: "info"},
	}, nil
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "panemux", "config.yaml"), nil
}

func defaultStateDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "panemux", "state"), nil
}

// Validate checks semantic constraints after load.
func (c Config) Validate() error {
	if c.ConfigVersion != CurrentConfigVersion {
		return fmt.Errorf("unsupported config_version %d (want %d)", c.ConfigVersion, CurrentConfigVersion)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir must not be empty")
	}
	if c.DefaultProvider == "" {
		return fmt.Errorf("default_provider must not be empty")
	}
	known := make(map[string]struct{}, len(c.Providers))
	for _, p := range c.Providers {
		if p == "" {
			return fmt.Errorf("providers must not contain empty ids")
		}
		known[p] = struct{}{}
	}
	if _, ok := known[c.DefaultProvider]; len(c.Providers) > 0 && !ok {
		return fmt.Errorf("default_provider %q is not in providers", c.DefaultProvider)
	}
	for context, provider := range c.WidgetPreferences {
		if _, ok := known[provider]; len(c.Providers) > 0 && !ok {
			return fmt.Errorf("widget_preferences[%s] names unknown provider %q", context, provider)
		}
	}
	return nil
}
