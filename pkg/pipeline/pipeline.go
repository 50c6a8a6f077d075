// Package pipeline runs the kundli chart pipeline shared by the CLI and the
// HTTP server.
//
// # Stages
//
//  1. Decode: parse the raw JSON or YAML payload
//  2. Resolve: locate and normalize the chart object ([resolve])
//  3. Place: compute glyph coordinates ([placement])
//  4. Render: produce artifacts in the requested formats ([sink])
//
// Decode, resolve and place are pure and cheap; resolved charts and rendered
// artifacts are cached by a [Runner] keyed on the payload hash and the options
// that affect each stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, payload, pipeline.Options{
//	    Formats: []string{"svg", "xlsx"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kundli/pkg/cache"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/render/styles"
	"github.com/matzehuels/kundli/pkg/resolve"
)

const (
	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = sink.FormatSVG

	// DefaultPalette is the built-in palette used when none is named.
	DefaultPalette = "classic"

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	// Decode options
	PayloadFormat payload.Format `json:"payload_format,omitempty"`

	// Resolve options
	Strict        bool `json:"strict,omitempty"`
	DeriveDignity bool `json:"derive_dignity,omitempty"`

	// Render options
	Formats        []string        `json:"formats,omitempty"`
	Palette        string          `json:"palette,omitempty"`
	Theme          *styles.Palette `json:"theme,omitempty"` // color overrides applied on top of Palette
	Title          string          `json:"title,omitempty"`
	Scale          float64         `json:"scale,omitempty"`
	MarkRetrograde bool            `json:"mark_retrograde,omitempty"`

	// Refresh bypasses cached charts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PayloadHash is the content hash of the raw payload.
	PayloadHash string

	Resolution *resolve.Resolution
	Model      *placement.Model

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Planets     int
	Dropped     int
	ResolveTime time.Duration
	PlaceTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ChartHit  bool // Whether the resolved chart came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks the options and applies defaults. Format
// aliases are normalized in place. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = append([]string(nil), o.Formats...)
	for i, f := range o.Formats {
		norm, err := sink.ValidateFormat(f)
		if err != nil {
			return err
		}
		o.Formats[i] = norm
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if _, ok := styles.PaletteByName(o.Palette); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown palette %q", o.Palette)
	}
	if o.Theme != nil {
		if err := o.Theme.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid theme")
		}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.validated = true
	return nil
}

// ResolveOptions returns the resolver options.
func (o *Options) ResolveOptions() resolve.Options {
	return resolve.Options{
		Strict:        o.Strict,
		DeriveDignity: o.DeriveDignity,
		Logger:        o.Logger,
	}
}

// Style builds the render style from the palette and theme overrides.
func (o *Options) Style() styles.Style {
	s := styles.NewSimple()
	if p, ok := styles.PaletteByName(o.Palette); ok {
		s.Palette = p
	}
	if o.Theme != nil {
		s.Palette = s.Palette.Merge(*o.Theme)
	}
	s.MarkRetrograde = o.MarkRetrograde
	return s
}

// ChartKeyOpts returns cache key options for chart resolution.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Strict:        o.Strict,
		DeriveDignity: o.DeriveDignity,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	palette := o.Palette
	if o.Theme != nil {
		palette += ":" + cache.HashValue(o.Theme)[:12]
	}
	return cache.ArtifactKeyOpts{
		Format:         format,
		Palette:        palette,
		Title:          o.Title,
		Scale:          o.Scale,
		MarkRetrograde: o.MarkRetrograde,
	}
}
