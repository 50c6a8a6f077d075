package resolve

import (
	"github.com/PaesslerAG/jsonpath"
)

// Shape names the payload wrapping a matcher recognized.
type Shape string

const (
	ShapeRasiChart Shape = "rasiChart"
	ShapeChart     Shape = "chart"
	ShapeBare      Shape = "bare"
	ShapePayload   Shape = "payload"

	// ShapeNone means no object-like chart candidate exists at all.
	ShapeNone Shape = "none"
)

// Matcher recognizes one payload shape. Paths are JSONPath expressions
// evaluated against the payload in order; the first one that yields an
// object accepted by Accept wins. A nil Accept accepts any object.
type Matcher struct {
	Shape  Shape
	Paths  []string
	Accept func(obj map[string]any) bool
}

// Match returns the chart object this matcher locates in doc, together with
// the path that produced it.
func (m Matcher) Match(doc any) (map[string]any, string, bool) {
	for _, path := range m.Paths {
		v, ok := lookup(path, doc)
		if !ok {
			continue
		}
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if m.Accept != nil && !m.Accept(obj) {
			continue
		}
		return obj, path, true
	}
	return nil, "", false
}

// DefaultMatchers returns the built-in matchers in priority order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{
			Shape: ShapeRasiChart,
			Paths: []string{
				"$.data.rasiChart",
				"$.rasiChart",
				"$.data.data.rasiChart",
				"$.chart.rasiChart",
				"$.data.chart.rasiChart",
			},
		},
		{
			Shape: ShapeChart,
			Paths: []string{"$.data.chart", "$.chart"},
		},
		{
			Shape:  ShapeBare,
			Paths:  []string{"$", "$.data"},
			Accept: isBareChart,
		},
		{
			Shape: ShapePayload,
			Paths: []string{"$"},
		},
	}
}

// lagnaPaths are searched, in order, for an ascendant when the chart object
// has none.
var lagnaPaths = []string{
	"$.overview.lagna",
	"$.data.overview.lagna",
	"$.lagna",
	"$.data.lagna",
	"$.analysis.overview.lagna",
	"$.data.analysis.overview.lagna",
}

// lookup evaluates a JSONPath expression. Missing keys and type mismatches
// along the path are reported as not found.
func lookup(path string, doc any) (any, bool) {
	v, err := jsonpath.Get(path, doc)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

func isBareChart(obj map[string]any) bool {
	_, _, hasPlanets := planetsField(obj)
	return hasPlanets && present(obj, "ascendant")
}

// planetsField returns the raw planets value and the key it was found under.
func planetsField(obj map[string]any) (any, string, bool) {
	for _, key := range []string{"planets", "planetaryPositions"} {
		if present(obj, key) {
			return obj[key], key, true
		}
	}
	return nil, "", false
}

func present(obj map[string]any, key string) bool {
	v, ok := obj[key]
	return ok && v != nil
}
