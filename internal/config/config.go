// Package config loads the kundli TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/kundli/config.toml (falling back to
// ~/.config/kundli/config.toml). Every key is optional; a missing file
// yields [Default]. Command-line flags override file values.
//
//	[render]
//	formats = ["svg", "xlsx"]
//	palette = "dark"
//
//	[theme]
//	planet = "#22c55e"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//
//	[fetch]
//	timeout = "5s"
//	attempts = 4
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/fetch"
	"github.com/matzehuels/kundli/pkg/pipeline"
	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/render/styles"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the whole configuration file.
type Config struct {
	Render RenderConfig   `toml:"render"`
	Theme  styles.Palette `toml:"theme"`
	Cache  CacheConfig    `toml:"cache"`
	Server ServerConfig   `toml:"server"`
	Fetch  FetchConfig    `toml:"fetch"`
}

// RenderConfig holds pipeline defaults.
type RenderConfig struct {
	Formats        []string `toml:"formats"`
	Palette        string   `toml:"palette"`
	Title          string   `toml:"title"`
	Scale          float64  `toml:"scale"`
	Strict         bool     `toml:"strict"`
	DeriveDignity  bool     `toml:"derive_dignity"`
	MarkRetrograde bool     `toml:"mark_retrograde"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `kundli serve`.
type ServerConfig struct {
	Addr    string   `toml:"addr"`
	Timeout Duration `toml:"timeout"`
}

// FetchConfig configures payload downloads.
type FetchConfig struct {
	Timeout  Duration `toml:"timeout"`
	Attempts int      `toml:"attempts"`
	Delay    Duration `toml:"delay"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Formats: []string{pipeline.DefaultFormat},
			Palette: pipeline.DefaultPalette,
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Prefix:  cache.DefaultRedisPrefix,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Timeout: Duration{30 * time.Second},
		},
		Fetch: FetchConfig{
			Timeout:  Duration{fetch.DefaultTimeout},
			Attempts: cache.DefaultRetry.Attempts,
			Delay:    Duration{cache.DefaultRetry.Delay},
		},
	}
}

// DefaultPath returns the configuration file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kundli", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kundli", "config.toml")
	}
	return filepath.Join(home, ".config", "kundli", "config.toml")
}

// Load reads the file at path, or at DefaultPath if path is empty. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the file at path, which must exist. Values override the
// defaults key by key. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that the TOML types cannot express.
func (c Config) Validate() error {
	for _, f := range c.Render.Formats {
		if _, err := sink.ValidateFormat(f); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
		}
	}
	if c.Render.Palette != "" {
		if _, ok := styles.PaletteByName(c.Render.Palette); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "render.palette: unknown palette %q (want one of %s)",
				c.Render.Palette, strings.Join(styles.PaletteNames(), ", "))
		}
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be positive")
	}
	if err := c.Theme.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone, "":
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Fetch.Attempts < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fetch.attempts must not be negative")
	}
	return nil
}

// PipelineOptions converts the render section and theme to pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		Strict:         c.Render.Strict,
		DeriveDignity:  c.Render.DeriveDignity,
		Formats:        append([]string(nil), c.Render.Formats...),
		Palette:        c.Render.Palette,
		Title:          c.Render.Title,
		Scale:          c.Render.Scale,
		MarkRetrograde: c.Render.MarkRetrograde,
	}
	if c.Theme != (styles.Palette{}) {
		theme := c.Theme
		opts.Theme = &theme
	}
	return opts
}

// FetchOptions converts the fetch section to client options.
func (c Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout: c.Fetch.Timeout.Duration,
		Retry: cache.RetryPolicy{
			Attempts: c.Fetch.Attempts,
			Delay:    c.Fetch.Delay.Duration,
		},
		TTL: c.Cache.TTL.Duration,
	}
}
