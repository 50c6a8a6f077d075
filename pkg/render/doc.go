// Package render converts rendered chart SVG into other formats.
//
// # Overview
//
// Charts are drawn as SVG by [sink.RenderSVG]. Raster and print formats are
// produced from that SVG by the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(model, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// rsvg-convert must be on PATH:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// Visual styles for the SVG live in the [styles] subpackage and output
// formats in [sink].
//
// [sink.RenderSVG]: github.com/matzehuels/kundli/pkg/render/sink.RenderSVG
// [styles]: github.com/matzehuels/kundli/pkg/render/styles
// [sink]: github.com/matzehuels/kundli/pkg/render/sink
package render
