// Package cli implements the kundli command-line interface.
//
// # Commands
//
//   - render: draw a chart payload as SVG, PNG, PDF, JSON, MessagePack or XLSX
//   - resolve: print the normalized chart and its placement model
//   - inspect: browse the twelve houses in an interactive table
//   - serve: run the HTTP API
//   - cache: manage the chart and artifact cache
//
// Payloads are read from a file, from stdin ("-") or from an http(s) URL.
// All commands support --verbose (-v) for debug-level logging and --config
// to select the TOML configuration file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kundli/internal/config"
	"github.com/matzehuels/kundli/pkg/buildinfo"
	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/fetch"
	"github.com/matzehuels/kundli/pkg/observability"
	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "kundli"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "kundli draws North-Indian birth charts",
		Long:         `kundli normalizes astrological chart payloads of many shapes and draws them as North-Indian diamond charts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and registers log-backed hooks in
// debug mode.
func (c *CLI) loadConfig() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load("")
	}
	if err != nil {
		return err
	}
	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
	return nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache builds the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
			Prefix:   c.cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", c.cfg.Cache.RedisAddr)
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newFetcher creates a payload download client sharing the runner's cache.
func (c *CLI) newFetcher(cc cache.Cache) *fetch.Client {
	opts := c.cfg.FetchOptions()
	opts.Cache = cc
	opts.Logger = c.Logger
	return fetch.NewClient(opts)
}

// cacheDir returns the configured cache directory, defaulting to the XDG
// location (~/.cache/kundli/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// readInput returns the raw payload named by arg: a URL, "-" for stdin, or
// a file path. The returned format is the hint from the file extension.
func readInput(ctx context.Context, arg string, fetcher *fetch.Client, refresh bool) ([]byte, payload.Format, error) {
	if isURL(arg) {
		data, err := fetcher.Fetch(ctx, arg, refresh)
		return data, payload.FormatAuto, err
	}
	return payload.Load(arg)
}

// statusFor returns the status writer of cmd. When an artifact streams to
// stdout, status moves to stderr.
func statusFor(cmd *cobra.Command, streaming bool) status {
	if streaming {
		return status{w: cmd.ErrOrStderr()}
	}
	return status{w: cmd.OutOrStdout()}
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
