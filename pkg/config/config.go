// Package config loads Flowgrid configuration from a TOML file.
//
// Configuration is optional: every field has a working default and a missing
// config file is not an error. CLI flags override file values; the merge
// happens in the CLI layer, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full application configuration.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CanvasConfig sets the default layout geometry.
type CanvasConfig struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	NodeWidth   float64 `toml:"node_width"`
	NodeHeight  float64 `toml:"node_height"`
	Padding     float64 `toml:"padding"`
	Orientation string  `toml:"orientation"`
	Routing     string  `toml:"routing"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the XDG default.
	Dir string `toml:"dir"`

	// RedisURL is the Redis connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	MongoURL string `toml:"mongo_url"`

	// Database is the Mongo database name for stored workflows.
	Database string `toml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:       1000,
			Height:      600,
			NodeWidth:   120,
			NodeHeight:  48,
			Padding:     40,
			Orientation: "horizontal",
			Routing:     "curved",
		},
		Cache: CacheConfig{
			Backend:  "file",
			RedisURL: "redis://localhost:6379/0",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			MongoURL: "mongodb://localhost:27017",
			Database: "flowgrid",
		},
	}
}

// DefaultPath returns the standard config file location,
// e.g. ~/.config/flowgrid/config.toml on Linux.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "flowgrid", "config.toml"), nil
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file returns the defaults without error; a malformed file
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
