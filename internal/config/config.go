// Package config loads graphcache configuration from TOML and builds the
// configured store and codec.
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	codec "github.com/hanpama/graphcache/internal/codec"
	store "github.com/hanpama/graphcache/internal/store"
)

// Duration is a time.Duration that decodes from TOML strings like "5m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config is the root configuration.
type Config struct {
	Store     StoreConfig     `toml:"store"`
	Cache     CacheConfig     `toml:"cache"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// StoreConfig selects and configures the cache store backend.
type StoreConfig struct {
	// Backend is one of "memory", "redis", "mongo" or "null".
	Backend string `toml:"backend"`

	// Redis settings.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`

	// Mongo settings.
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig configures middleware behavior.
type CacheConfig struct {
	// DefaultTTL applies to fields without a schema hint. Zero stores
	// without expiry.
	DefaultTTL Duration `toml:"default_ttl"`
	// Codec is "json" (default) or "proto".
	Codec string `toml:"codec"`
	// Schema is the path of the SDL file carrying @cache hints. Optional.
	Schema string `toml:"schema"`
}

// TelemetryConfig configures the OTLP trace exporter.
type TelemetryConfig struct {
	Endpoint string `toml:"endpoint"`
	Service  string `toml:"service"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:    "memory",
			Database:   "graphcache",
			Collection: "entries",
		},
		Cache: CacheConfig{
			DefaultTTL: Duration(5 * time.Minute),
			Codec:      "json",
		},
		Telemetry: TelemetryConfig{
			Service: "graphcache",
		},
	}
}

// Load reads path into a Config on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// OpenStore builds the configured store backend.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case "", "memory":
		return store.NewMemory(), nil
	case "null":
		return store.NewNull(), nil
	case "redis":
		if c.Store.Addr == "" {
			return nil, fmt.Errorf("store.addr is required for the redis backend")
		}
		return store.NewRedis(store.RedisConfig{
			Addr:     c.Store.Addr,
			Password: c.Store.Password,
			DB:       c.Store.DB,
			Prefix:   c.Store.Prefix,
		}), nil
	case "mongo":
		if c.Store.URI == "" {
			return nil, fmt.Errorf("store.uri is required for the mongo backend")
		}
		return store.NewMongo(ctx, store.MongoConfig{
			URI:        c.Store.URI,
			Database:   c.Store.Database,
			Collection: c.Store.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}

// NewCodec builds the configured codec.
func (c *Config) NewCodec() (codec.Codec, error) {
	return codec.ByName(c.Cache.Codec)
}

// ReadSchema reads the SDL file configured for cache hints, or "" when none
// is configured.
func (c *Config) ReadSchema() (string, error) {
	if c.Cache.Schema == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.Cache.Schema)
	if err != nil {
		return "", fmt.Errorf("read schema: %w", err)
	}
	return string(data), nil
}
