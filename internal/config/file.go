package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ytget/timetable-viewer/internal/cache"
	"github.com/ytget/timetable-viewer/internal/client"
)

// Environment overrides
const (
	EnvServerURL       = "TIMETABLE_SERVER_URL"
	EnvRefreshInterval = "TIMETABLE_REFRESH_INTERVAL"
	EnvLogLevel        = "TIMETABLE_LOG_LEVEL"
	EnvCachePath       = "TIMETABLE_CACHE_PATH"
)

// File is the configuration of the terminal client, stored as YAML
type File struct {
	Server  ServerConfig  `yaml:"server"`
	Refresh RefreshConfig `yaml:"refresh"`
	Logging LoggingConfig `yaml:"logging"`
	Cache   CacheConfig   `yaml:"cache"`
}

// ServerConfig locates the timetable server.
type ServerConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"`
}

// RefreshConfig configures polling while the solver runs.
type RefreshConfig struct {
	Interval string `yaml:"interval"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CacheConfig configures the offline snapshot cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultFile returns the default configuration.
func DefaultFile() *File {
	return &File{
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: (DefaultRequestTimeout * time.Second).String(),
		},
		Refresh: RefreshConfig{
			Interval: (DefaultRefreshInterval * time.Second).String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    cache.DefaultPath(),
		},
	}
}

// DefaultPath returns the per-user location of the configuration file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "timetable-viewer", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply in both cases.
func Load(path string) (*File, error) {
	cfg := DefaultFile()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *File) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *File) applyEnvOverrides() {
	if url := os.Getenv(EnvServerURL); url != "" {
		c.Server.URL = url
	}
	if interval := os.Getenv(EnvRefreshInterval); interval != "" {
		c.Refresh.Interval = interval
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv(EnvCachePath); path != "" {
		c.Cache.Path = path
	}
}

// LoadDotEnv loads KEY=value pairs from a dotenv file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// RefreshInterval returns the polling period, clamped to the allowed range.
func (c *File) RefreshInterval() time.Duration {
	return clampDuration(c.Refresh.Interval, DefaultRefreshInterval, MinRefreshInterval, MaxRefreshInterval)
}

// RequestTimeout returns the HTTP timeout, clamped to the allowed range.
func (c *File) RequestTimeout() time.Duration {
	return clampDuration(c.Server.Timeout, DefaultRequestTimeout, MinRequestTimeout, MaxRequestTimeout)
}

// Validate validates the configuration.
func (c *File) Validate() error {
	if _, err := client.ParseServerURL(c.Server.URL); err != nil {
		return err
	}
	if c.Refresh.Interval != "" {
		if _, err := time.ParseDuration(c.Refresh.Interval); err != nil {
			return fmt.Errorf("invalid refresh interval %q: %w", c.Refresh.Interval, err)
		}
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			return fmt.Errorf("invalid server timeout %q: %w", c.Server.Timeout, err)
		}
	}
	return nil
}

func clampDuration(value string, def, lo, hi int) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(def) * time.Second
	}
	if d < time.Duration(lo)*time.Second {
		return time.Duration(lo) * time.Second
	}
	if d > time.Duration(hi)*time.Second {
		return time.Duration(hi) * time.Second
	}
	return d
}
