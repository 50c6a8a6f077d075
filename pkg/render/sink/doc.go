// Package sink provides output format renderers for placed charts.
//
// # Overview
//
// A "sink" transforms a [placement.Model] into a final output format:
//
//   - SVG: the diamond chart, drawn by a [styles.Style]
//   - JSON: the model itself, for external renderers
//   - MessagePack: the model in compact binary form
//   - XLSX: a workbook with a Houses sheet and a Planets sheet
//   - PDF and PNG: SVG converted by rsvg-convert
//
// # SVG Output
//
// [RenderSVG] draws the frame, the sign numbers, the planets and the zodiac
// glyphs in that order:
//
//	svg := sink.RenderSVG(model,
//	    sink.WithStyle(styles.NewSimple()),
//	    sink.WithTitle("Libra rising"),
//	)
//
// [RenderErrorSVG] and [RenderEmptySVG] draw the explicit "could not render
// chart" and "no chart data" states on the same canvas.
//
// # Adding New Formats
//
//  1. Create a renderer function: func RenderFoo(m *placement.Model, opts ...FooOption) ([]byte, error)
//  2. Add the format to [Formats] and [Render]
//  3. Register a content type in [ContentType] for the HTTP server
//
// [placement.Model]: github.com/matzehuels/kundli/pkg/placement.Model
// [styles.Style]: github.com/matzehuels/kundli/pkg/render/styles.Style
package sink
