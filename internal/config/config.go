// Package config loads the callsheet CLI configuration.
//
// The file lives at $XDG_CONFIG_HOME/callsheet/config.toml (default
// ~/.config/callsheet/config.toml) and is optional:
//
//	[layout]
//	format = "4-page"
//	orientation = "portrait"
//
//	[output]
//	formats = ["xlsx", "png"]
//
//	[cache]
//	backend = "redis"
//	scope = "offense"
//
//	[cache.redis]
//	addr = "redis.staff.local:6379"
//
// CALLSHEET_REDIS_URL overrides the redis URL.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/callsheet/pkg/cache"
	"github.com/matzehuels/callsheet/pkg/errors"
	"github.com/matzehuels/callsheet/pkg/pipeline"
)

const appName = "callsheet"

// EnvRedisURL overrides cache.redis.url when set.
const EnvRedisURL = "CALLSHEET_REDIS_URL"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds the CLI configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

// LayoutConfig holds default page settings. Empty values defer to the
// document.
type LayoutConfig struct {
	Format      string `toml:"format"`
	Orientation string `toml:"orientation"`
}

// OutputConfig holds default render settings.
type OutputConfig struct {
	Formats []string `toml:"formats"`
	Print   bool     `toml:"print"`
	Scale   int      `toml:"scale"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Scope   string      `toml:"scope"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig mirrors cache.RedisConfig for the config file.
type RedisConfig struct {
	URL      string `toml:"url"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Formats: append([]string(nil), pipeline.DefaultFormats...),
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{Backend: BackendFile},
	}
}

// DefaultPath returns the config file path using XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.toml")
}

// DefaultCacheDir returns the file cache directory using XDG_CACHE_HOME.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			md, err := toml.DecodeFile(path, &cfg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", path)
			}
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "parse config file %s: unknown key %q", path, undecoded[0].String())
			}
		}
	}

	if url := os.Getenv(EnvRedisURL); url != "" {
		cfg.Cache.Redis.URL = url
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	c.Layout.Format = strings.ToLower(strings.TrimSpace(c.Layout.Format))
	c.Layout.Orientation = strings.ToLower(strings.TrimSpace(c.Layout.Orientation))
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = defaults.Output.Formats
	}
	if c.Output.Scale <= 0 {
		c.Output.Scale = defaults.Output.Scale
	}
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaults.Cache.Backend
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := pipeline.ValidatePageFormat(c.Layout.Format); err != nil {
		return err
	}
	if err := pipeline.ValidateOrientation(c.Layout.Orientation); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.Redis.URL == "" && c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis needs url or addr (or set %s)", EnvRedisURL)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q must be file, redis or none", c.Cache.Backend)
	}
	return nil
}

// RedisConfig returns the redis settings in the form the cache expects.
func (c *Config) RedisConfig() cache.RedisConfig {
	r := c.Cache.Redis
	return cache.RedisConfig{
		URL:      r.URL,
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
		Prefix:   r.Prefix,
	}
}

// Keyer returns the cache keyer for the configured scope, or nil for the
// default keyer.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Scope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Scope+":")
}

// OpenCache opens the configured cache backend. noCache forces the null
// cache.
func (c *Config) OpenCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Cache.Backend == BackendNone {
		return cache.NewNullCache(), nil
	}
	if c.Cache.Backend == BackendRedis {
		return cache.NewRedisCache(ctx, c.RedisConfig())
	}
	dir := c.Cache.Dir
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}
