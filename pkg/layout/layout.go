// Package layout holds the fixed geometry of the North-Indian diamond chart:
// the canvas size, the anchor point of each house, and the rule used to fan
// out several planets sharing a house.
//
// The values are design constants. They are not derived from the diamond
// construction, and changing any of them moves glyphs on every rendered
// chart.
package layout

import "fmt"

// Canvas geometry in logical units.
const (
	CanvasSize = 400
	Padding    = 20

	// StackStep is the horizontal distance between planets sharing a house.
	StackStep = 15
)

// Glyph offsets from a house anchor. The sign number and the zodiac glyph
// sit at different heights so they never overlap.
var (
	SignNumberOffset = Point{X: 0, Y: -9}
	SignGlyphOffset  = Point{X: 0, Y: -25}
)

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rule positions the planets of one house relative to its anchor.
// Direction is +1 or -1 and points the fan-out toward the house interior.
type Rule struct {
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	Direction int     `json:"direction"`
}

// Slot is the layout entry of a single house.
type Slot struct {
	House  int   `json:"house"`
	Anchor Point `json:"anchor"`
	Rule   Rule  `json:"rule"`
}

// PlanetAt returns the position of the i-th (0-based) planet in the house.
func (s Slot) PlanetAt(i int) Point {
	return Point{
		X: s.Anchor.X + s.Rule.DX + float64(i*StackStep*s.Rule.Direction),
		Y: s.Anchor.Y + s.Rule.DY,
	}
}

// Table maps houses 1..12 to their slots.
type Table struct {
	slots [12]Slot
}

var classic = Table{slots: [12]Slot{
	{House: 1, Anchor: Point{200, 180}, Rule: Rule{0, 20, 1}},
	{House: 2, Anchor: Point{110, 100}, Rule: Rule{-18, 18, 1}},
	{House: 3, Anchor: Point{80, 120}, Rule: Rule{-25, 4, 1}},
	{House: 4, Anchor: Point{180, 210}, Rule: Rule{-25, 20, 1}},
	{House: 5, Anchor: Point{90, 300}, Rule: Rule{-25, -12, -1}},
	{House: 6, Anchor: Point{110, 320}, Rule: Rule{-18, -18, -1}},
	{House: 7, Anchor: Point{200, 240}, Rule: Rule{0, -20, -1}},
	{House: 8, Anchor: Point{290, 320}, Rule: Rule{18, -12, -1}},
	{House: 9, Anchor: Point{320, 300}, Rule: Rule{20, 21, -1}},
	{House: 10, Anchor: Point{220, 210}, Rule: Rule{50, -4, -1}},
	{House: 11, Anchor: Point{320, 120}, Rule: Rule{-25, -15, -1}},
	{House: 12, Anchor: Point{290, 100}, Rule: Rule{18, 18, 1}},
}}

// Classic returns the standard 400-unit North-Indian layout table.
func Classic() *Table {
	t := classic
	return &t
}

// Lookup returns the slot of house h, or false if h is not in 1..12.
func (t *Table) Lookup(h int) (Slot, bool) {
	if h < 1 || h > len(t.slots) {
		return Slot{}, false
	}
	return t.slots[h-1], true
}

// Slot returns the slot of house h. It panics if h is not in 1..12.
func (t *Table) Slot(h int) Slot {
	s, ok := t.Lookup(h)
	if !ok {
		panic(fmt.Sprintf("layout: house %d out of range [1,12]", h))
	}
	return s
}

// Slots returns all twelve slots in house order.
func (t *Table) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots[:])
	return out
}
