package pipeline

import (
	"fmt"

	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/payload"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/resolve"
)

// Decode parses a raw payload.
func Decode(data []byte, opts Options) (any, error) {
	return payload.Decode(data, opts.PayloadFormat)
}

// Resolve locates and normalizes the chart in a decoded payload.
func Resolve(doc any, opts Options) (*resolve.Resolution, error) {
	return resolve.New(opts.ResolveOptions()).Resolve(doc)
}

// Place computes the geometric model of a resolved chart on the classic
// layout.
func Place(res *resolve.Resolution, opts Options) *placement.Model {
	return placement.New(layout.Classic(), opts.Logger).Render(res.Chart)
}

// Render generates artifacts in every requested format.
func Render(res *resolve.Resolution, m *placement.Model, opts Options) (map[string][]byte, error) {
	sinkOpts := sink.Options{
		Style: opts.Style(),
		Title: opts.Title,
		Scale: opts.Scale,
		Chart: res.Chart,
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := sink.Render(m, format, sinkOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// FailureSVG draws the chart frame for a failed run: the empty state when
// the payload held no chart data, the error state otherwise.
func FailureSVG(err error, opts Options) []byte {
	style := sink.WithStyle(opts.Style())
	if errors.Is(err, errors.ErrCodeNoChartData) {
		return sink.RenderEmptySVG(style)
	}
	return sink.RenderErrorSVG(errors.UserMessage(err), style)
}
