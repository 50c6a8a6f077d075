package chart

import "strings"

// Dignity classifies a planet's strength by its sign placement.
type Dignity int

const (
	DignityNone Dignity = iota
	DignityExalted
	DignityDebilitated
)

// String returns "exalted", "debilitated" or "none".
func (d Dignity) String() string {
	switch d {
	case DignityExalted:
		return "exalted"
	case DignityDebilitated:
		return "debilitated"
	}
	return "none"
}

// MarshalText implements encoding.TextMarshaler.
func (d Dignity) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dignity) UnmarshalText(b []byte) error {
	*d = ParseDignity(string(b))
	return nil
}

// Marker returns the chart-face marker: ↑ for exalted, ↓ for debilitated.
func (d Dignity) Marker() string {
	switch d {
	case DignityExalted:
		return "↑"
	case DignityDebilitated:
		return "↓"
	}
	return ""
}

// ParseDignity reads a dignity label case-insensitively. Unknown labels
// (own sign, friendly, neutral...) carry no marker and map to DignityNone.
func ParseDignity(s string) Dignity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exalted", "exaltation":
		return DignityExalted
	case "debilitated", "debilitation":
		return DignityDebilitated
	}
	return DignityNone
}

// The nine grahas in their conventional order.
var Grahas = []string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

var grahaCodes = map[string]string{
	"sun":     "Su",
	"moon":    "Mo",
	"mars":    "Ma",
	"mercury": "Me",
	"jupiter": "Ju",
	"venus":   "Ve",
	"saturn":  "Sa",
	"rahu":    "Ra",
	"ketu":    "Ke",
}

// Code returns the two-letter chart label for a planet name. The nine
// grahas use their classical abbreviations; any other body uses the first
// two letters of its name.
func Code(name string) string {
	if c, ok := grahaCodes[strings.ToLower(name)]; ok {
		return c
	}
	r := []rune(name)
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

var (
	exaltation = map[string]Sign{
		"sun": Aries, "moon": Taurus, "mars": Capricorn, "mercury": Virgo,
		"jupiter": Cancer, "venus": Pisces, "saturn": Libra,
	}
	debilitation = map[string]Sign{
		"sun": Libra, "moon": Scorpio, "mars": Cancer, "mercury": Pisces,
		"jupiter": Capricorn, "venus": Virgo, "saturn": Aries,
	}
)

// ClassicalDignity returns the dignity of a visible graha placed in sign s.
// Rahu, Ketu and unknown bodies are always DignityNone.
func ClassicalDignity(name string, s Sign) Dignity {
	if !s.Valid() {
		return DignityNone
	}
	key := strings.ToLower(name)
	switch s {
	case exaltation[key]:
		return DignityExalted
	case debilitation[key]:
		return DignityDebilitated
	}
	return DignityNone
}
