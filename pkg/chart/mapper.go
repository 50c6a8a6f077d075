package chart

import "fmt"

// NumSigns is the number of zodiac signs and, equally, of houses.
const NumSigns = 12

// SignInHouse returns the sign (1..12) occupying house h when sign asc rises.
// Houses follow the natural zodiac order from the ascendant, wrapping 12 to 1.
//
// It panics if asc or h is outside 1..12.
func SignInHouse(asc, h int) int {
	mustRange("ascendant sign", asc)
	mustRange("house", h)
	return (asc+h-2)%NumSigns + 1
}

// HouseOfSign returns the house (1..12) holding sign s when sign asc rises.
// It is the inverse of [SignInHouse] for a fixed ascendant.
//
// It panics if asc or s is outside 1..12.
func HouseOfSign(asc, s int) int {
	mustRange("ascendant sign", asc)
	mustRange("sign", s)
	return (s-asc+NumSigns)%NumSigns + 1
}

// HouseSigns returns the occupying sign of every house, indexed by house-1.
func HouseSigns(asc int) [NumSigns]int {
	var out [NumSigns]int
	for h := 1; h <= NumSigns; h++ {
		out[h-1] = SignInHouse(asc, h)
	}
	return out
}

// Valid reports whether n is a valid sign or house number.
func Valid(n int) bool {
	return n >= 1 && n <= NumSigns
}

func mustRange(what string, n int) {
	if !Valid(n) {
		panic(fmt.Sprintf("chart: %s %d out of range [1,%d]", what, n, NumSigns))
	}
}
