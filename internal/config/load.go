package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var configExts = []string{".toml", ".yaml", ".yml"}

// Sources says where to look; zero values use the real environment.
type Sources struct {
	// File is an explicit --config path; it must exist.
	File string
	// UserDir overrides os.UserConfigDir()/tada.
	UserDir string
	// WorkDir overrides the working directory searched for .tada.*.
	WorkDir string
	// Getenv overrides os.Getenv.
	Getenv func(string) string
}

// Load builds the configuration in priority order:
// 1. Defaults
// 2. User config file (<user config dir>/tada/config.{toml,yaml,yml})
// 3. Project config file (.tada.{toml,yaml,yml} in the working directory)
// 4. Explicit --config file
// 5. Environment variables
// Flags are applied by the caller afterwards, then Validate runs.
func Load(src Sources) (*Config, error) {
	cfg := Default()

	if f := findUserConfigFile(src.UserDir); f != "" {
		if err := loadConfigFile(cfg, f); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", f, err)
		}
	}
	if f := findProjectConfigFile(src.WorkDir); f != "" {
		if err := loadConfigFile(cfg, f); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", f, err)
		}
	}
	if src.File != "" {
		if err := loadConfigFile(cfg, src.File); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", src.File, err)
		}
	}

	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	loadFromEnv(cfg, getenv)
	return cfg, nil
}

func loadFromEnv(cfg *Config, getenv func(string) string) {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set("TADA_DATA", &cfg.Data)
	set("TADA_BACKEND", &cfg.Backend)
	set("TADA_SLOT", &cfg.Slot)
	set("TADA_REFRESH", &cfg.Refresh)
	set("TADA_THEME", &cfg.Theme)
	set("TADA_LOG_LEVEL", &cfg.LogLevel)
	set("TADA_LOG_FORMAT", &cfg.LogFormat)
	set("TADA_COLOR", &cfg.Color)
	if getenv("NO_COLOR") != "" {
		cfg.Color = "never"
	}
}

func findUserConfigFile(dir string) string {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(base, "tada")
	}
	return firstExisting(dir, "config")
}

func findProjectConfigFile(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	return firstExisting(dir, ".tada")
}

func firstExisting(dir, stem string) string {
	for _, ext := range configExts {
		p := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// loadConfigFile decodes path over cfg; keys missing from the file keep their
// current values. Unknown keys are an error.
func loadConfigFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}
