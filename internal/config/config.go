package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by the loader.
const (
	EnvConfigPath = "KAUDIT_CONFIG"
	EnvLogLevel   = "KAUDIT_LOG_LEVEL"
)

// Config is the top-level application configuration.
// It is loaded from ~/.config/kaudit/config.yaml when present.
type Config struct {
	Version int       `yaml:"version" json:"version"`
	Log     LogConfig `yaml:"log"     json:"log"`
}

// LogConfig configures the diagnostic logger. Logs always go to stderr;
// stdout is reserved for findings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" json:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format" json:"format"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Loader is the interface for reading Config from disk.
type Loader interface {
	// Load reads, parses, and validates the configuration file.
	Load() (*Config, error)

	// ConfigPath returns the absolute path to the configuration file.
	ConfigPath() string
}

// FileLoader reads Config from a YAML file and applies environment overrides.
type FileLoader struct {
	path string

	// explicit is true when the path came from a flag or $KAUDIT_CONFIG;
	// a missing explicit file is an error, a missing default file is not.
	explicit bool
}

// NewFileLoader returns a loader for path. An empty path selects
// $KAUDIT_CONFIG, falling back to ~/.config/kaudit/config.yaml.
func NewFileLoader(path string) *FileLoader {
	if path != "" {
		return &FileLoader{path: path, explicit: true}
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return &FileLoader{path: env, explicit: true}
	}
	return &FileLoader{path: defaultConfigPath()}
}

// defaultConfigPath returns ~/.config/kaudit/config.yaml, or "" when the home
// directory cannot be determined.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "kaudit", "config.yaml")
}

// ConfigPath implements Loader.
func (l *FileLoader) ConfigPath() string { return l.path }

// Load implements Loader. Values absent from the file keep their defaults;
// $KAUDIT_LOG_LEVEL overrides the file.
func (l *FileLoader) Load() (*Config, error) {
	cfg := Defaults()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !l.explicit:
			// No config file: defaults apply.
		case err != nil:
			return nil, fmt.Errorf("read config %q: %w", l.path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", l.path, err)
			}
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %q: %w", l.path, errors.Join(errs...))
	}
	return cfg, nil
}
