// Package config loads tada settings from defaults, config files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	// Data is the JSON file or SQLite database holding the slot.
	// Empty means tasks.json / tasks.db in the working directory.
	Data string `toml:"data" yaml:"data"`

	// Backend selects the slot implementation: "json" or "sqlite".
	Backend string `toml:"backend" yaml:"backend"`

	// Slot names the key/value row used by the sqlite backend.
	Slot string `toml:"slot" yaml:"slot"`

	// Refresh is a cron spec ("@every 1m", "*/5 * * * *") for periodic
	// re-rendering.
	Refresh string `toml:"refresh" yaml:"refresh"`

	Theme     string `toml:"theme" yaml:"theme"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`

	// Color is "auto", "always" or "never".
	Color string `toml:"color" yaml:"color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:   BackendJSON,
		Slot:      "tasks",
		Refresh:   "@every 1m",
		Theme:     "classic",
		LogLevel:  "info",
		LogFormat: "text",
		Color:     "auto",
	}
}

// Validate checks enumerations and the refresh schedule.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("backend %q: want %s or %s", c.Backend, BackendJSON, BackendSQLite)
	}
	if strings.TrimSpace(c.Slot) == "" {
		return fmt.Errorf("slot name is empty")
	}
	if _, err := cron.ParseStandard(c.Refresh); err != nil {
		return fmt.Errorf("refresh %q: %w", c.Refresh, err)
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme %q: want classic, neon or mono", c.Theme)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color %q: want auto, always or never", c.Color)
	}
	return nil
}

// DataPath resolves the slot location for the configured backend.
func (c *Config) DataPath() (string, error) {
	p := expandPath(c.Data)
	if p == "" {
		p = "tasks.json"
		if c.Backend == BackendSQLite {
			p = "tasks.db"
		}
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, p), nil
}

// expandPath expands ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
