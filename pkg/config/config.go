// Package config loads optional user configuration for canvashtml.
//
// Configuration lives at $XDG_CONFIG_HOME/canvashtml/config.toml
// (falling back to ~/.config/canvashtml/config.toml). A missing file is
// not an error: defaults apply, and command-line flags override whatever
// the file sets.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// appName is used for the configuration and cache directories.
const appName = "canvashtml"

// Duration wraps time.Duration for TOML decoding from strings like "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the decoded configuration file.
type Config struct {
	// RootDir is the default root directory for asset resolution,
	// overridden by --root-dir.
	RootDir string `toml:"root_dir"`

	Serve ServeConfig `toml:"serve"`
	Cache CacheConfig `toml:"cache"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis" or "none".
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Serve: ServeConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			TTL:       Duration{time.Hour},
		},
	}
}

// Load reads the configuration file at path, or the default location
// when path is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, nil // no home dir, run on defaults
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath returns the XDG-standard configuration file location.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// configDir returns the configuration directory (~/.config/canvashtml/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/canvashtml/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
