package placement

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/layout"
)

// Engine places planets and sign glyphs using a layout table. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	Table  *layout.Table
	Logger *log.Logger
}

// New creates an engine. A nil table selects [layout.Classic]; a nil logger
// discards output.
func New(table *layout.Table, logger *log.Logger) *Engine {
	if table == nil {
		table = layout.Classic()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{Table: table, Logger: logger}
}

type housed struct {
	house  int
	planet chart.Planet
}

// Planets returns one placement per placeable planet, grouped by house in
// house order and in input order within a house, plus the names of the
// planets that were dropped.
func (e *Engine) Planets(c *chart.Chart) ([]Placement, []string) {
	if !c.Ascendant.Sign.Valid() {
		e.Logger.Warn("ascendant sign invalid, no planets placed", "sign", int(c.Ascendant.Sign))
		dropped := make([]string, len(c.Planets))
		for i, p := range c.Planets {
			dropped[i] = p.Name
		}
		return nil, dropped
	}

	var (
		groups  [chart.NumSigns + 1][]housed
		dropped []string
	)
	for _, p := range c.Planets {
		h := c.HouseOf(p)
		if h == 0 {
			e.Logger.Warn("dropping planet with invalid sign", "planet", p.Name, "sign", int(p.Sign))
			dropped = append(dropped, p.Name)
			continue
		}
		groups[h] = append(groups[h], housed{house: h, planet: p})
	}

	out := make([]Placement, 0, len(c.Planets)-len(dropped))
	for h := 1; h <= chart.NumSigns; h++ {
		if len(groups[h]) == 0 {
			continue
		}
		slot, ok := e.Table.Lookup(h)
		if !ok {
			for _, hp := range groups[h] {
				e.Logger.Warn("dropping planet in house without layout", "planet", hp.planet.Name, "house", h)
				dropped = append(dropped, hp.planet.Name)
			}
			continue
		}
		for i, hp := range groups[h] {
			out = append(out, e.place(slot, i, hp))
		}
		if len(groups[h]) > 1 {
			e.Logger.Debug("planets share house", "house", h, "count", len(groups[h]))
		}
	}
	return out, dropped
}

func (e *Engine) place(slot layout.Slot, i int, hp housed) Placement {
	pt := slot.PlanetAt(i)
	code := chart.Code(hp.planet.Name)
	marker := hp.planet.Dignity.Marker()
	deg := RoundDegree(hp.planet.Degree)
	return Placement{
		TargetID:   hp.planet.Name,
		X:          pt.X,
		Y:          pt.Y,
		Label:      PlanetLabel(code, marker, deg),
		House:      hp.house,
		Sign:       hp.planet.Sign,
		Code:       code,
		Marker:     marker,
		Degree:     deg,
		Retrograde: hp.planet.Retrograde,
	}
}

// Glyphs returns the twelve sign-number placements and the twelve zodiac
// glyph placements, both in house order. The chart's ascendant must be
// valid.
func (e *Engine) Glyphs(c *chart.Chart) (numbers, glyphs []Placement) {
	numbers = make([]Placement, 0, chart.NumSigns)
	glyphs = make([]Placement, 0, chart.NumSigns)
	for h := 1; h <= chart.NumSigns; h++ {
		slot := e.Table.Slot(h)
		s := c.SignOfHouse(h)
		id := strconv.Itoa(int(s))

		n := slot.Anchor.Add(layout.SignNumberOffset)
		numbers = append(numbers, Placement{
			TargetID: id, X: n.X, Y: n.Y, Label: id, House: h, Sign: s,
		})

		g := slot.Anchor.Add(layout.SignGlyphOffset)
		glyphs = append(glyphs, Placement{
			TargetID: id, X: g.X, Y: g.Y, Label: s.Glyph(), House: h, Sign: s,
		})
	}
	return numbers, glyphs
}

// Render computes the full model for a chart. Charts with an invalid
// ascendant cannot be drawn and yield a model with no glyphs; the resolver
// never produces such charts.
func (e *Engine) Render(c *chart.Chart) *Model {
	m := &Model{Ascendant: c.Ascendant.Sign}
	m.Planets, m.Dropped = e.Planets(c)
	if c.Ascendant.Sign.Valid() {
		m.SignNumbers, m.SignGlyphs = e.Glyphs(c)
	}
	e.Logger.Debug("chart placed",
		"ascendant", c.Ascendant.Sign,
		"planets", len(m.Planets),
		"dropped", len(m.Dropped))
	return m
}
