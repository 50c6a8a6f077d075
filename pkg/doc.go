// Package pkg provides the core libraries for kundli chart rendering.
//
// # Overview
//
// kundli turns astrological chart payloads of many shapes into North-Indian
// diamond charts. The pkg directory is organized by pipeline stage:
//
//  1. [payload] - decoding raw JSON or YAML into a generic document
//  2. [resolve] - locating chart data in the document and normalizing it
//  3. [chart] - signs, planets, dignities and the sign/house mapping
//  4. [layout] and [placement] - house geometry and glyph positions
//  5. [render] - SVG, PNG, PDF, JSON, MessagePack and XLSX output
//  6. [pipeline] - orchestration with caching and hooks
//
// Supporting packages are [cache], [errors], [fetch], [observability] and
// [buildinfo].
//
// # Architecture
//
//	raw bytes (file, stdin, URL)
//	         ↓
//	    [payload] (decode)
//	         ↓
//	    [resolve] (shape detection, normalization, placeholder)
//	         ↓
//	    [placement] (house and fan-out positions)
//	         ↓
//	    [render/sink] (SVG and data formats)
//
// # Quick Start
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := r.Execute(ctx, data, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("chart.svg", res.Artifacts["svg"], 0o644)
//
// [payload]: github.com/matzehuels/kundli/pkg/payload
// [resolve]: github.com/matzehuels/kundli/pkg/resolve
// [chart]: github.com/matzehuels/kundli/pkg/chart
// [layout]: github.com/matzehuels/kundli/pkg/layout
// [placement]: github.com/matzehuels/kundli/pkg/placement
// [render]: github.com/matzehuels/kundli/pkg/render
// [pipeline]: github.com/matzehuels/kundli/pkg/pipeline
// [cache]: github.com/matzehuels/kundli/pkg/cache
// [errors]: github.com/matzehuels/kundli/pkg/errors
// [fetch]: github.com/matzehuels/kundli/pkg/fetch
// [observability]: github.com/matzehuels/kundli/pkg/observability
// [buildinfo]: github.com/matzehuels/kundli/pkg/buildinfo
package pkg
