// Package config loads tool configuration from a TOML file.
//
// Configuration is optional: every field has a working default, the
// CLI and server only consult the file for overrides. The default
// location is $XDG_CONFIG_HOME/gviz/config.toml with flags taking
// precedence over file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	gverrors "github.com/NikolaOgnjenovic/Graph-visualizer/pkg/errors"
)

// Config is the root configuration.
type Config struct {
	// Limits bounds every structural walk.
	Limits LimitsConfig `toml:"limits"`
	// Cache configures the artifact cache.
	Cache CacheConfig `toml:"cache"`
	// Server configures the HTTP server.
	Server ServerConfig `toml:"server"`
	// Store selects and configures the workspace store backend.
	Store StoreConfig `toml:"store"`
}

// LimitsConfig bounds graph construction.
type LimitsConfig struct {
	MaxDepth int `toml:"max_depth"`
	MaxNodes int `toml:"max_nodes"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	// Enabled toggles caching. Defaults to true.
	Enabled *bool `toml:"enabled"`
	// Dir is the cache directory. Defaults to the user cache dir.
	Dir string `toml:"dir"`
}

// Duration decodes TOML duration strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// ReadTimeout and WriteTimeout guard slow clients.
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// StoreConfig selects the workspace store backend.
// Backend is one of "memory", "redis", or "mongo".
type StoreConfig struct {
	Backend string      `toml:"backend"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig configures the Redis workspace store.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the MongoDB workspace store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	enabled := true
	return Config{
		Limits: LimitsConfig{},
		Cache:  CacheConfig{Enabled: &enabled, Dir: defaultCacheDir()},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(30 * time.Second),
		},
		Store: StoreConfig{
			Backend: "memory",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "gviz",
				Collection: "workspaces",
			},
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, gverrors.Wrap(gverrors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, gverrors.Wrap(gverrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "gviz", "config.toml")
}

// CacheEnabled reports whether the artifact cache should be used.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".gviz-cache"
	}
	return filepath.Join(dir, "gviz")
}
