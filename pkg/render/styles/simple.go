package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/placement"
)

// DefaultStrokeWidth is the frame line width.
const DefaultStrokeWidth = 3

// Simple draws the chart with flat colors and CSS classes.
type Simple struct {
	Palette     Palette
	StrokeWidth float64

	// MarkRetrograde appends an "R" to retrograde planet labels.
	MarkRetrograde bool
}

// NewSimple returns a Simple style with the classic palette.
func NewSimple() Simple {
	p, _ := PaletteByName("classic")
	return Simple{Palette: p, StrokeWidth: DefaultStrokeWidth}
}

func (s Simple) RenderDefs(buf *bytes.Buffer) {
	p := s.Palette
	buf.WriteString("  <defs>\n    <style>\n")
	fmt.Fprintf(buf, "      .bg { fill: %s; }\n", p.Background)
	fmt.Fprintf(buf, "      .stroke { stroke: %s; stroke-width: %g; fill: none; }\n", p.Stroke, s.strokeWidth())
	fmt.Fprintf(buf, "      .rashi { fill: %s; font: 700 10px/1 sans-serif; dominant-baseline: middle; text-anchor: middle; }\n", p.SignNumber)
	fmt.Fprintf(buf, "      .planet { fill: %s; font: 400 10px/1 sans-serif; dominant-baseline: middle; text-anchor: middle; }\n", p.Planet)
	fmt.Fprintf(buf, "      .rasi-glyph { fill: %s; font: 700 16px/1 serif; dominant-baseline: middle; text-anchor: middle; }\n", p.Glyph)
	fmt.Fprintf(buf, "      .message { font: 400 12px/1 sans-serif; dominant-baseline: middle; text-anchor: middle; }\n")
	buf.WriteString("    </style>\n  </defs>\n")
}

func (s Simple) RenderFrame(buf *bytes.Buffer, lines []layout.Line) {
	side := float64(layout.CanvasSize - 2*layout.Padding)
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%g" height="%g" class="bg stroke"/>`+"\n",
		layout.Padding, layout.Padding, side, side)
	for _, l := range lines {
		fmt.Fprintf(buf, `  <line x1="%g" y1="%g" x2="%g" y2="%g" class="stroke"/>`+"\n",
			l.From.X, l.From.Y, l.To.X, l.To.Y)
	}
}

func (s Simple) RenderSignNumber(buf *bytes.Buffer, p placement.Placement) {
	renderText(buf, "rashi", fmt.Sprintf("sign-%d", p.House), p.X, p.Y, p.Label)
}

func (s Simple) RenderSignGlyph(buf *bytes.Buffer, p placement.Placement) {
	renderText(buf, "rasi-glyph", fmt.Sprintf("glyph-%d", p.House), p.X, p.Y, p.Label)
}

func (s Simple) RenderPlanet(buf *bytes.Buffer, p placement.Placement) {
	label := p.Label
	if s.MarkRetrograde && p.Retrograde {
		label += " R"
	}
	renderText(buf, "planet", "planet-"+p.TargetID, p.X, p.Y, label)
}

func (s Simple) RenderMessage(buf *bytes.Buffer, text string, isError bool) {
	color := s.Palette.Muted
	if isError {
		color = s.Palette.Error
	}
	mid := float64(layout.CanvasSize) / 2
	fmt.Fprintf(buf, `  <text x="%g" y="%g" class="message" fill="%s">%s</text>`+"\n",
		mid, mid, color, escape(text))
}

func (s Simple) strokeWidth() float64 {
	if s.StrokeWidth <= 0 {
		return DefaultStrokeWidth
	}
	return s.StrokeWidth
}

func renderText(buf *bytes.Buffer, class, id string, x, y float64, text string) {
	fmt.Fprintf(buf, `  <text id="%s" x="%g" y="%g" class="%s">%s</text>`+"\n",
		escape(id), x, y, class, escape(text))
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

var _ Style = Simple{}
