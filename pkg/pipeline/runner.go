package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/observability"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/resolve"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode → resolve → place → render on a raw payload.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{PayloadHash: cache.Hash(data)}

	// Stage 1+2: Decode and resolve
	start := time.Now()
	res, hit, err := r.resolve(ctx, data, result.PayloadHash, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.Resolution = res
	result.Stats.ResolveTime = time.Since(start)
	result.CacheInfo.ChartHit = hit

	r.Logger.Info("resolved chart",
		"shape", res.Shape,
		"ascendant", res.Chart.Ascendant.Sign,
		"planets", len(res.Chart.Planets),
		"synthesized", res.Synthesized,
		"cached", hit)

	// Stage 3: Place
	start = time.Now()
	m := r.Place(ctx, res, opts)
	result.Model = m
	result.Stats.Planets = len(m.Planets)
	result.Stats.Dropped = len(m.Dropped)
	result.Stats.PlaceTime = time.Since(start)

	if len(m.Dropped) > 0 {
		r.Logger.Warn("planets dropped", "planets", m.Dropped)
	}

	// Stage 4: Render
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Resolve decodes and resolves a raw payload, using the chart cache.
func (r *Runner) Resolve(ctx context.Context, data []byte, opts Options) (*resolve.Resolution, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res, _, err := r.resolve(ctx, data, cache.Hash(data), opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return res, nil
}

func (r *Runner) resolve(ctx context.Context, data []byte, payloadHash string, opts Options) (*resolve.Resolution, bool, error) {
	hooks := observability.Pipeline()
	key := r.Keyer.ChartKey(payloadHash, opts.ChartKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res resolve.Resolution
			if err := json.Unmarshal(cached, &res); err == nil && res.Chart != nil {
				observability.Cache().OnCacheHit(ctx, "chart")
				return &res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "chart")
	}

	hooks.OnResolveStart(ctx, len(data))
	start := time.Now()

	doc, err := Decode(data, opts)
	if err != nil {
		hooks.OnResolveComplete(ctx, "", 0, time.Since(start), err)
		return nil, false, fmt.Errorf("decode: %w", err)
	}
	res, err := Resolve(doc, opts)
	if err != nil {
		hooks.OnResolveComplete(ctx, "", 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnResolveComplete(ctx, string(res.Shape), len(res.Chart.Planets), time.Since(start), nil)

	if encoded, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.ChartTTL); err != nil {
			r.Logger.Warn("cache write failed", "kind", "chart", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "chart", len(encoded))
		}
	}
	return res, false, nil
}

// Place computes the geometric model of a resolved chart.
func (r *Runner) Place(ctx context.Context, res *resolve.Resolution, opts Options) *placement.Model {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnPlaceStart(ctx, len(res.Chart.Planets))
	start := time.Now()
	m := Place(res, opts)
	hooks.OnPlaceComplete(ctx, len(m.Planets), len(m.Dropped), time.Since(start))
	return m
}

// RenderWithCacheInfo renders every requested format, serving artifacts
// from the cache where possible. m may be nil, in which case the chart is
// placed only if some artifact is missing. The bool reports whether all
// artifacts were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *resolve.Resolution, m *placement.Model, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	chartData, err := json.Marshal(res.Chart)
	if err != nil {
		return nil, false, fmt.Errorf("serialize chart for cache key: %w", err)
	}
	chartHash := cache.Hash(chartData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	if m == nil {
		m = r.Place(ctx, res, opts)
	}
	hooks := observability.Pipeline()
	for _, format := range missing {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		sub := opts
		sub.Formats = []string{format}
		rendered, err := Render(res, m, sub)
		if err != nil {
			hooks.OnRenderComplete(ctx, format, 0, time.Since(start), err)
			return nil, false, err
		}
		data := rendered[format]
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), nil)
		artifacts[format] = data

		key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "kind", "artifact", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *resolve.Resolution, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, nil, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
