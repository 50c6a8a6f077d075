package placement

import (
	"fmt"
	"math"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/layout"
)

// Placement positions one glyph on the canvas.
type Placement struct {
	// TargetID is the planet name for planet placements and the sign
	// number for sign placements.
	TargetID string  `json:"targetId" msgpack:"targetId"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Label    string  `json:"label" msgpack:"label"`

	House  int        `json:"house" msgpack:"house"`
	Sign   chart.Sign `json:"sign" msgpack:"sign"`
	Code   string     `json:"code,omitempty" msgpack:"code,omitempty"`
	Marker string     `json:"marker,omitempty" msgpack:"marker,omitempty"`
	Degree int        `json:"degree,omitempty" msgpack:"degree,omitempty"`

	Retrograde bool `json:"retrograde,omitempty" msgpack:"retrograde,omitempty"`
}

// Point returns the placement's coordinate.
func (p Placement) Point() layout.Point {
	return layout.Point{X: p.X, Y: p.Y}
}

// Model is the complete geometric description of one chart, consumed by
// the render sinks.
type Model struct {
	Planets     []Placement `json:"planets" msgpack:"planets"`
	SignNumbers []Placement `json:"signNumbers" msgpack:"signNumbers"`
	SignGlyphs  []Placement `json:"signGlyphs" msgpack:"signGlyphs"`

	// Ascendant is the sign in house 1.
	Ascendant chart.Sign `json:"ascendant" msgpack:"ascendant"`

	// Dropped lists planets that could not be placed.
	Dropped []string `json:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

// PlanetsInHouse returns the planet placements of house h in fan-out order.
func (m *Model) PlanetsInHouse(h int) []Placement {
	var out []Placement
	for _, p := range m.Planets {
		if p.House == h {
			out = append(out, p)
		}
	}
	return out
}

// RoundDegree rounds half up, so 12.5 becomes 13.
func RoundDegree(d float64) int {
	return int(math.Floor(d + 0.5))
}

// PlanetLabel formats the chart-face label: code, dignity marker, a space
// and the rounded degree, e.g. "Ma↑ 29°".
func PlanetLabel(code, marker string, degree int) string {
	return fmt.Sprintf("%s%s %d°", code, marker, degree)
}
