// Package styles defines how the elements of a chart are drawn as SVG.
package styles

import (
	"bytes"

	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/placement"
)

// Style defines the visual appearance of a chart.
type Style interface {
	// RenderDefs writes the SVG <defs> content (CSS classes).
	RenderDefs(buf *bytes.Buffer)
	// RenderFrame writes the background and the diamond lines.
	RenderFrame(buf *bytes.Buffer, lines []layout.Line)
	// RenderSignNumber writes the sign number of one house.
	RenderSignNumber(buf *bytes.Buffer, p placement.Placement)
	// RenderSignGlyph writes the zodiac glyph of one house.
	RenderSignGlyph(buf *bytes.Buffer, p placement.Placement)
	// RenderPlanet writes one planet label.
	RenderPlanet(buf *bytes.Buffer, p placement.Placement)
	// RenderMessage writes a centered status message for error and
	// empty charts. isError selects the error colors.
	RenderMessage(buf *bytes.Buffer, text string, isError bool)
}
