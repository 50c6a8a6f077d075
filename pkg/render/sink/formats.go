package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/render/styles"
)

// Output formats.
const (
	FormatSVG     = "svg"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	FormatXLSX    = "xlsx"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatJSON, FormatMsgpack, FormatXLSX, FormatPNG, FormatPDF}

// Options are the format-independent render settings.
type Options struct {
	Style styles.Style
	Title string
	Scale float64

	// Chart is embedded in JSON output when set.
	Chart *chart.Chart
}

// ValidateFormat normalizes a format name.
func ValidateFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "msgpack" || f == "mp" {
		return FormatMsgpack, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Render dispatches to the renderer of format.
func Render(m *placement.Model, format string, opts Options) ([]byte, error) {
	var svgOpts []SVGOption
	if opts.Style != nil {
		svgOpts = append(svgOpts, WithStyle(opts.Style))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, WithTitle(opts.Title))
	}

	switch format {
	case FormatSVG:
		return RenderSVG(m, svgOpts...), nil
	case FormatJSON:
		jsonOpts := []JSONOption{WithJSONIndent()}
		if opts.Chart != nil {
			jsonOpts = append(jsonOpts, WithJSONChart(opts.Chart))
		}
		return RenderJSON(m, jsonOpts...)
	case FormatMsgpack:
		return RenderMsgpack(m)
	case FormatXLSX:
		return RenderXLSX(m)
	case FormatPNG:
		pngOpts := []PNGOption{WithPNGSVGOptions(svgOpts...)}
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.Scale))
		}
		return RenderPNG(m, pngOpts...)
	case FormatPDF:
		return RenderPDF(m, svgOpts...)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatMsgpack:
		return "application/msgpack"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}
