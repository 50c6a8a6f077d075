package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/render/styles"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
	title string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle(t string) SVGOption       { return func(r *svgRenderer) { r.title = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.NewSimple()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws a placed chart.
func RenderSVG(m *placement.Model, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf)
	r.style.RenderFrame(&buf, layout.Frame())
	for _, p := range m.SignNumbers {
		r.style.RenderSignNumber(&buf, p)
	}
	for _, p := range m.Planets {
		r.style.RenderPlanet(&buf, p)
	}
	for _, p := range m.SignGlyphs {
		r.style.RenderSignGlyph(&buf, p)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderErrorSVG draws the error state: the padded square with the message
// in the style's error color.
func RenderErrorSVG(msg string, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf)
	r.style.RenderFrame(&buf, nil)
	r.style.RenderMessage(&buf, "Error: "+msg, true)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderEmptySVG draws the bare diamond with a "No Chart Data" notice.
func RenderEmptySVG(opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	r.open(&buf)
	r.style.RenderFrame(&buf, layout.Frame())
	r.style.RenderMessage(&buf, "No Chart Data", false)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) open(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		layout.CanvasSize, layout.CanvasSize, layout.CanvasSize, layout.CanvasSize)
	if r.title != "" {
		buf.WriteString("  <title>")
		_ = xml.EscapeText(buf, []byte(r.title))
		buf.WriteString("</title>\n")
	}
	r.style.RenderDefs(buf)
}
