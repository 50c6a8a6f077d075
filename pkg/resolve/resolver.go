package resolve

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/errors"
)

// Options configures a Resolver.
type Options struct {
	// Strict returns NO_CHART_DATA instead of synthesizing a placeholder.
	Strict bool

	// DeriveDignity fills in exalted/debilitated from the classical sign
	// tables for planets whose payload entry has no dignity field.
	DeriveDignity bool

	// Matchers overrides DefaultMatchers. Order is priority.
	Matchers []Matcher

	Logger *log.Logger
}

// Resolution is the outcome of resolving one payload.
type Resolution struct {
	Chart *chart.Chart `json:"chart"`
	Shape Shape        `json:"shape"`

	// Path is the JSONPath of the chart object, empty when none was found.
	Path string `json:"path,omitempty"`

	// AscendantInferred is set when the ascendant came from an
	// overview/lagna field rather than the chart object.
	AscendantInferred bool `json:"ascendantInferred,omitempty"`

	// Synthesized is set when Chart is a placeholder.
	Synthesized bool `json:"synthesized,omitempty"`
}

// Resolver locates and parses chart objects. It holds no per-call state and
// is safe for concurrent use.
type Resolver struct {
	matchers      []Matcher
	strict        bool
	deriveDignity bool
	logger        *log.Logger
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	m := opts.Matchers
	if len(m) == 0 {
		m = DefaultMatchers()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Resolver{
		matchers:      m,
		strict:        opts.Strict,
		deriveDignity: opts.DeriveDignity,
		logger:        logger,
	}
}

// Resolve resolves payload with default options.
func Resolve(payload any) (*Resolution, error) {
	return New(Options{}).Resolve(payload)
}

// Resolve locates the chart object in payload and parses it.
//
// It returns INVALID_CHART_DATA when a located planet or ascendant field is
// present but unreadable, even if the other one is missing, and NO_CHART_DATA when nothing usable exists and
// the resolver is strict. Otherwise it always returns a chart.
func (r *Resolver) Resolve(payload any) (*Resolution, error) {
	res := &Resolution{Shape: ShapeNone}
	obj := r.locate(payload, res)

	var (
		asc       chart.Ascendant
		hasAsc    bool
		planetsV  any
		hasPlanet bool
		plKey     string
	)
	if obj != nil {
		if present(obj, "ascendant") {
			a, err := parseAscendant(obj["ascendant"])
			if err != nil {
				return nil, err
			}
			asc, hasAsc = a, true
		}
		planetsV, plKey, hasPlanet = planetsField(obj)
	}

	var planets []chart.Planet
	if hasPlanet {
		ps, err := parsePlanets(planetsV, r.deriveDignity)
		if err != nil {
			return nil, err
		}
		planets = ps
	}

	if !hasAsc {
		if a, path, ok := inferAscendant(payload); ok {
			r.logger.Warn("ascendant inferred from overview", "path", path, "sign", a.Sign)
			asc, hasAsc = a, true
			res.AscendantInferred = true
		}
	}

	if !hasPlanet || !hasAsc {
		if r.strict {
			return nil, errors.New(errors.ErrCodeNoChartData,
				"no chart data in payload (planets: %t, ascendant: %t)", hasPlanet, hasAsc)
		}
		anchor := chart.Aries
		if hasAsc {
			anchor = asc.Sign
		}
		r.logger.Warn("chart data missing, drawing placeholder chart",
			"shape", res.Shape, "planets", hasPlanet, "ascendant", hasAsc, "anchor", anchor)
		res.Chart = Placeholder(anchor)
		res.Synthesized = true
		return res, nil
	}

	c := &chart.Chart{Ascendant: asc, Planets: planets}
	c.Houses = parseHouses(obj, func(i int, reason string) {
		r.logger.Warn("ignoring declared house", "index", i, "reason", reason)
	})
	if bad := c.Mismatches(); len(bad) > 0 {
		r.logger.Warn("declared houses disagree with ascendant, using derived houses",
			"houses", bad, "source", c.Houses.Source)
	}

	r.logger.Debug("chart resolved",
		"shape", res.Shape,
		"planets_key", plKey,
		"planets", len(planets),
		"ascendant", asc.Sign,
		"houses", c.Houses.Source)
	res.Chart = c
	return res, nil
}

// locate runs the matchers in order and records the winning shape.
func (r *Resolver) locate(payload any, res *Resolution) map[string]any {
	for _, m := range r.matchers {
		obj, path, ok := m.Match(payload)
		if !ok {
			r.logger.Debug("shape not matched", "shape", m.Shape)
			continue
		}
		r.logger.Debug("shape matched", "shape", m.Shape, "path", path)
		res.Shape, res.Path = m.Shape, path
		return obj
	}
	return nil
}

// inferAscendant looks for a lagna value outside the chart object. The
// value may be a sign name, a sign number or an object with sign fields.
// Unreadable values are skipped.
func inferAscendant(payload any) (chart.Ascendant, string, bool) {
	for _, path := range lagnaPaths {
		if v, ok := lookup(path, payload); ok {
			if a, err := parseAscendant(v); err == nil {
				return a, path, true
			}
		}
	}
	return chart.Ascendant{}, "", false
}
