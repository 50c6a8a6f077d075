package chart

import "fmt"

// Ascendant is the rising sign, the reference point of house 1.
type Ascendant struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
}

// Planet is one body placed in the chart.
type Planet struct {
	Name       string  `json:"name"`
	Sign       Sign    `json:"sign"`
	Degree     float64 `json:"degree"`
	Dignity    Dignity `json:"dignity"`
	Retrograde bool    `json:"retrograde,omitempty"`

	// DeclaredHouse is the house the payload claimed for this planet, or 0.
	// It is informational only; placement always derives the house from
	// the sign and the ascendant.
	DeclaredHouse int `json:"declaredHouse,omitempty"`
}

// HouseSource records how the payload described its houses.
type HouseSource int

const (
	// HousesDerived means the payload declared no houses.
	HousesDerived HouseSource = iota
	// HousesByNumber means houses were declared with numeric sign ids.
	HousesByNumber
	// HousesByName means houses were declared with sign names.
	HousesByName
)

// String implements fmt.Stringer.
func (s HouseSource) String() string {
	switch s {
	case HousesByNumber:
		return "by-number"
	case HousesByName:
		return "by-name"
	}
	return "derived"
}

// MarshalText implements encoding.TextMarshaler.
func (s HouseSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *HouseSource) UnmarshalText(b []byte) error {
	switch string(b) {
	case "by-number":
		*s = HousesByNumber
	case "by-name":
		*s = HousesByName
	case "derived", "":
		*s = HousesDerived
	default:
		return fmt.Errorf("unknown house source %q", b)
	}
	return nil
}

// Houses is the payload's own house table. Declared is indexed by house-1
// and zero where the payload omitted a house.
type Houses struct {
	Source   HouseSource    `json:"source"`
	Declared [NumSigns]Sign `json:"declared"`
}

// Chart is the canonical chart record produced by resolution.
type Chart struct {
	Ascendant Ascendant `json:"ascendant"`
	Planets   []Planet  `json:"planets"`
	Houses    Houses    `json:"houses"`
}

// HouseOf returns the house of p, derived from its sign and the ascendant.
// It returns 0 if either sign is invalid.
func (c *Chart) HouseOf(p Planet) int {
	if !c.Ascendant.Sign.Valid() || !p.Sign.Valid() {
		return 0
	}
	return HouseOfSign(int(c.Ascendant.Sign), int(p.Sign))
}

// SignOfHouse returns the sign occupying house h. It panics on an invalid
// ascendant or house, like [SignInHouse].
func (c *Chart) SignOfHouse(h int) Sign {
	return Sign(SignInHouse(int(c.Ascendant.Sign), h))
}

// PlanetsInHouse returns the planets in house h in input order.
func (c *Chart) PlanetsInHouse(h int) []Planet {
	var out []Planet
	for _, p := range c.Planets {
		if c.HouseOf(p) == h {
			out = append(out, p)
		}
	}
	return out
}

// Mismatches compares the declared house table against the derived one and
// returns the houses (1..12) where they disagree. Undeclared houses are
// skipped.
func (c *Chart) Mismatches() []int {
	if c.Houses.Source == HousesDerived || !c.Ascendant.Sign.Valid() {
		return nil
	}
	var out []int
	for h := 1; h <= NumSigns; h++ {
		d := c.Houses.Declared[h-1]
		if d == 0 {
			continue
		}
		if d != c.SignOfHouse(h) {
			out = append(out, h)
		}
	}
	return out
}
