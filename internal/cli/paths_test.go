package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCacheDirResolution(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name      string
		xdg       string
		configDir string
		want      string
	}{
		{"default", "", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/xdg-cache", "", filepath.Join("/tmp/xdg-cache", appName)},
		{"config wins", "/tmp/xdg-cache", "/var/cache/charts", "/var/cache/charts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			c := New(io.Discard, log.InfoLevel)
			c.cfg.Cache.Dir = tt.configDir

			got, err := c.cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}
