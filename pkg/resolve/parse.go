package resolve

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/errors"
)

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidChartData, format, args...)
}

// number reads a numeric payload value. Numeric strings are accepted
// because some upstreams serialize every field as text.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// integer reads a whole number.
func integer(v any) (int, bool) {
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	return int(f), true
}

// mod returns the non-negative remainder of x / m.
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// signFromLongitude maps an ecliptic longitude to its sign.
func signFromLongitude(lon float64) chart.Sign {
	return chart.Sign(int(math.Floor(mod(lon, 360)/30)) + 1)
}

// signFromString matches an exact English sign name or a decimal sign
// number. Payload names are not case-folded.
func signFromString(v string) (chart.Sign, bool) {
	if s, ok := chart.SignByName(v); ok {
		return s, true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && chart.Valid(n) {
		return chart.Sign(n), true
	}
	return 0, false
}

// readSign reads a sign from the first sign-bearing field present in obj:
// signId, sign (name or number), signIndex (zero-based) or longitude.
// found is false when none of the fields is present. A present field that
// does not resolve to 1..12 is an error.
func readSign(obj map[string]any) (s chart.Sign, found bool, err error) {
	switch {
	case present(obj, "signId"):
		n, ok := integer(obj["signId"])
		if !ok || !chart.Valid(n) {
			return 0, true, fmt.Errorf("signId %v is not a sign number in 1..12", obj["signId"])
		}
		return chart.Sign(n), true, nil

	case present(obj, "sign"):
		switch v := obj["sign"].(type) {
		case string:
			if sg, ok := signFromString(v); ok {
				return sg, true, nil
			}
			return 0, true, fmt.Errorf("unknown sign %q", v)
		default:
			n, ok := integer(v)
			if !ok || !chart.Valid(n) {
				return 0, true, fmt.Errorf("sign %v is not a sign name or number in 1..12", v)
			}
			return chart.Sign(n), true, nil
		}

	case present(obj, "signIndex"):
		n, ok := integer(obj["signIndex"])
		if !ok || n < 0 || n >= chart.NumSigns {
			return 0, true, fmt.Errorf("signIndex %v is not in 0..11", obj["signIndex"])
		}
		return chart.Sign(n + 1), true, nil

	case present(obj, "longitude"):
		lon, ok := number(obj["longitude"])
		if !ok || math.IsNaN(lon) || math.IsInf(lon, 0) {
			return 0, true, fmt.Errorf("longitude %v is not a number", obj["longitude"])
		}
		return signFromLongitude(lon), true, nil
	}
	return 0, false, nil
}

// readDegree reads the degree within the sign from degree, else from
// longitude mod 30, else 0.
func readDegree(obj map[string]any) (float64, error) {
	if present(obj, "degree") {
		d, ok := number(obj["degree"])
		if !ok || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, fmt.Errorf("degree %v is not a number", obj["degree"])
		}
		return d, nil
	}
	if present(obj, "longitude") {
		if lon, ok := number(obj["longitude"]); ok {
			return mod(lon, 30), nil
		}
	}
	return 0, nil
}

// parseAscendant accepts an object with sign fields, a sign name or a
// sign number.
func parseAscendant(v any) (chart.Ascendant, error) {
	switch a := v.(type) {
	case map[string]any:
		s, found, err := readSign(a)
		if err != nil {
			return chart.Ascendant{}, invalid("ascendant: %v", err)
		}
		if !found {
			return chart.Ascendant{}, invalid("ascendant has no sign, signId, signIndex or longitude")
		}
		deg, err := readDegree(a)
		if err != nil {
			return chart.Ascendant{}, invalid("ascendant: %v", err)
		}
		return chart.Ascendant{Sign: s, Degree: deg}, nil
	case string:
		if s, ok := signFromString(a); ok {
			return chart.Ascendant{Sign: s}, nil
		}
		return chart.Ascendant{}, invalid("ascendant: unknown sign %q", a)
	default:
		if n, ok := integer(a); ok && chart.Valid(n) {
			return chart.Ascendant{Sign: chart.Sign(n)}, nil
		}
		return chart.Ascendant{}, invalid("ascendant has unsupported value %v (%T)", v, v)
	}
}

// parsePlanets accepts a list of planet objects or an object keyed by
// planet name (the planetaryPositions form).
func parsePlanets(v any, deriveDignity bool) ([]chart.Planet, error) {
	switch ps := v.(type) {
	case []any:
		out := make([]chart.Planet, 0, len(ps))
		for i, item := range ps {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, invalid("planet #%d is %T, not an object", i+1, item)
			}
			name, _ := obj["name"].(string)
			if strings.TrimSpace(name) == "" {
				return nil, invalid("planet #%d has no name", i+1)
			}
			p, err := parsePlanet(name, obj, deriveDignity)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil

	case map[string]any:
		out := make([]chart.Planet, 0, len(ps))
		for _, key := range orderedPlanetKeys(ps) {
			obj, ok := ps[key].(map[string]any)
			if !ok {
				return nil, invalid("planet %q is %T, not an object", key, ps[key])
			}
			name := capitalize(key)
			if n, ok := obj["name"].(string); ok && strings.TrimSpace(n) != "" {
				name = n
			}
			p, err := parsePlanet(name, obj, deriveDignity)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	}
	return nil, invalid("planets is %T, not a list or object", v)
}

func parsePlanet(name string, obj map[string]any, deriveDignity bool) (chart.Planet, error) {
	s, found, err := readSign(obj)
	if err != nil {
		return chart.Planet{}, invalid("planet %q: %v", name, err)
	}
	if !found {
		return chart.Planet{}, invalid("planet %q has no sign, signId, signIndex or longitude", name)
	}
	deg, err := readDegree(obj)
	if err != nil {
		return chart.Planet{}, invalid("planet %q: %v", name, err)
	}

	p := chart.Planet{Name: name, Sign: s, Degree: deg}
	if d, ok := obj["dignity"].(string); ok {
		p.Dignity = chart.ParseDignity(d)
	} else if deriveDignity {
		p.Dignity = chart.ClassicalDignity(name, s)
	}
	for _, key := range []string{"retrograde", "isRetrograde"} {
		if b, ok := obj[key].(bool); ok && b {
			p.Retrograde = true
		}
	}
	for _, key := range []string{"house", "houseNumber"} {
		if h, ok := integer(obj[key]); ok && chart.Valid(h) {
			p.DeclaredHouse = h
			break
		}
	}
	return p, nil
}

// orderedPlanetKeys puts the nine grahas first in their conventional order
// and any other bodies after them alphabetically.
func orderedPlanetKeys(m map[string]any) []string {
	rank := make(map[string]int, len(chart.Grahas))
	for i, g := range chart.Grahas {
		rank[strings.ToLower(g)] = i
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[strings.ToLower(keys[i])]
		rj, jok := rank[strings.ToLower(keys[j])]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return keys[i] < keys[j]
	})
	return keys
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// parseHouses reads a declared house table from housePositions or houses.
// Entries it cannot read are reported through skip and left undeclared;
// houses never affect placement.
func parseHouses(obj map[string]any, skip func(i int, reason string)) chart.Houses {
	var h chart.Houses
	raw, ok := obj["housePositions"].([]any)
	if !ok {
		raw, ok = obj["houses"].([]any)
	}
	if !ok {
		return h
	}

	byName := false
	declared := 0
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			skip(i, fmt.Sprintf("entry is %T", item))
			continue
		}
		num := i + 1
		for _, key := range []string{"houseNumber", "house", "number"} {
			if n, ok := integer(entry[key]); ok {
				num = n
				break
			}
		}
		if !chart.Valid(num) {
			skip(i, fmt.Sprintf("house number %d out of range", num))
			continue
		}
		s, found, err := readSign(entry)
		if err != nil || !found {
			skip(i, "no readable sign")
			continue
		}
		if _, isName := entry["sign"].(string); isName && !present(entry, "signId") {
			if _, numeric := integer(entry["sign"]); !numeric {
				byName = true
			}
		}
		h.Declared[num-1] = s
		declared++
	}

	switch {
	case declared == 0:
		h.Source = chart.HousesDerived
	case byName:
		h.Source = chart.HousesByName
	default:
		h.Source = chart.HousesByNumber
	}
	return h
}
