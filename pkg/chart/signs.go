package chart

import (
	"strconv"
	"strings"
)

// Sign is a zodiac sign numbered 1 (Aries) through 12 (Pisces).
type Sign int

// The twelve signs in zodiac order.
const (
	Aries Sign = iota + 1
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [NumSigns]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signGlyphs = [NumSigns]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

var sanskritNames = [NumSigns]string{
	"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
	"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return Valid(int(s)) }

// Name returns the English sign name, or "Sign(n)" for invalid values.
func (s Sign) Name() string {
	if !s.Valid() {
		return "Sign(" + strconv.Itoa(int(s)) + ")"
	}
	return signNames[s-1]
}

// Glyph returns the Unicode zodiac symbol (♈..♓), or "" for invalid values.
func (s Sign) Glyph() string {
	if !s.Valid() {
		return ""
	}
	return signGlyphs[s-1]
}

// Sanskrit returns the rasi name, or "" for invalid values.
func (s Sign) Sanskrit() string {
	if !s.Valid() {
		return ""
	}
	return sanskritNames[s-1]
}

// String implements fmt.Stringer.
func (s Sign) String() string { return s.Name() }

// SignByName resolves an exact English sign name ("Capricorn") to its number.
// Matching is case-sensitive apart from surrounding whitespace; "capricorn"
// is accepted only through [ParseSign].
func SignByName(name string) (Sign, bool) {
	name = strings.TrimSpace(name)
	for i, n := range signNames {
		if n == name {
			return Sign(i + 1), true
		}
	}
	return 0, false
}

// ParseSign resolves typed sign input: a name (case-insensitive, English or
// Sanskrit) or a decimal number string in 1..12.
func ParseSign(s string) (Sign, bool) {
	s = strings.TrimSpace(s)
	if sg, ok := SignByName(s); ok {
		return sg, true
	}
	for i := range signNames {
		if strings.EqualFold(signNames[i], s) || strings.EqualFold(sanskritNames[i], s) {
			return Sign(i + 1), true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Valid(n) {
		return Sign(n), true
	}
	return 0, false
}

// Signs returns all twelve signs in zodiac order.
func Signs() []Sign {
	out := make([]Sign, NumSigns)
	for i := range out {
		out[i] = Sign(i + 1)
	}
	return out
}
