package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file is absent or partial.
const (
	DefaultBaseURL  = "https://api.devprep.dev"
	DefaultTimeout  = 15 * time.Second
	DefaultPageSize = 12
	DefaultDebounce = 300 * time.Millisecond
)

// Config is the on-disk client configuration.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Feed FeedConfig `yaml:"feed"`
	Data DataConfig `yaml:"data"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type FeedConfig struct {
	PageSize int    `yaml:"page_size"`
	Debounce string `yaml:"debounce"`
}

type DataConfig struct {
	Path string `yaml:"path"`
}

// GetTimeout parses the request timeout, falling back to the default.
func (a APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// GetDebounce parses the search debounce delay, falling back to the default.
func (f FeedConfig) GetDebounce() time.Duration {
	d, err := time.ParseDuration(f.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// Load reads configuration from path. A missing file yields defaults.
// DEVPREP_API overrides the configured base URL; the --api flag wins
// over both and is applied by the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if env := os.Getenv("DEVPREP_API"); env != "" {
		cfg.API.BaseURL = env
	}
	if cfg.Feed.PageSize <= 0 {
		cfg.Feed.PageSize = DefaultPageSize
	}
	if cfg.Data.Path == "" {
		p, err := DefaultDataPath()
		if err != nil {
			return nil, err
		}
		cfg.Data.Path = p
	} else {
		cfg.Data.Path = expandPath(cfg.Data.Path)
	}

	return cfg, nil
}

// DefaultConfigPath returns ~/.config/devprep/config.yaml, honoring
// XDG_CONFIG_HOME.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// TokenPath returns the path of the persisted bearer token, the only
// durable auth state the client keeps.
func TokenPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// DefaultDataPath resolves the SQLite read-marks database path under
// $XDG_DATA_HOME/devprep.
func DefaultDataPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "devprep", "devprep.db"), nil
}

func configDir() (string, error) {
	confHome := os.Getenv("XDG_CONFIG_HOME")
	if confHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		confHome = filepath.Join(home, ".config")
	}
	return filepath.Join(confHome, "devprep"), nil
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
