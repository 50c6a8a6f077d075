package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kundli/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[render]
formats = ["svg", "xlsx"]
palette = "dark"
strict = true

[theme]
planet = "#22c55e"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "72h"

[fetch]
timeout = "5s"
attempts = 4
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"svg", "xlsx"}, cfg.Render.Formats)
	assert.Equal(t, "dark", cfg.Render.Palette)
	assert.True(t, cfg.Render.Strict)
	assert.Equal(t, "#22c55e", cfg.Theme.Planet)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 72*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout.Duration)
	assert.Equal(t, 4, cfg.Fetch.Attempts)

	// Unset keys keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, Default().Render.Scale, cfg.Render.Scale)
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `[render`},
		{"unknown key", "[render]\ncolour = \"red\""},
		{"unknown section", "[planets]\nsun = 1"},
		{"bad format", "[render]\nformats = [\"gif\"]"},
		{"bad palette", "[render]\npalette = \"neon\""},
		{"bad color", "[theme]\nstroke = \"url(#x)\""},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad duration", "[fetch]\ntimeout = \"soon\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/kundli/config.toml", DefaultPath())
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.PipelineOptions()
	assert.Nil(t, opts.Theme, "empty theme should not override the palette")
	assert.Equal(t, cfg.Render.Formats, opts.Formats)

	cfg.Theme.Planet = "#123"
	cfg.Render.DeriveDignity = true
	opts = cfg.PipelineOptions()
	require.NotNil(t, opts.Theme)
	assert.Equal(t, "#123", opts.Theme.Planet)
	assert.True(t, opts.DeriveDignity)
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestFetchOptions(t *testing.T) {
	opts := Default().FetchOptions()
	assert.Equal(t, 3, opts.Retry.Attempts)
	assert.Equal(t, 10*time.Second, opts.Timeout)
}
