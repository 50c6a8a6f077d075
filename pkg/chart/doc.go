// Package chart defines the canonical natal chart model and the modular
// arithmetic that places the twelve zodiac signs into the twelve houses of
// a North-Indian diamond chart.
//
// # Overview
//
// A kundli is drawn with fixed house positions: house 1 is always the top
// inner diamond, and the signs rotate through the houses starting from the
// ascendant (lagna). Everything downstream of resolution works on a [Chart],
// a small immutable record holding the ascendant sign and the planets with
// their sign, degree and dignity.
//
// # Signs and Houses
//
// Signs and houses are both numbered 1..12. [SignInHouse] returns the sign
// occupying a house for a given ascendant, and [HouseOfSign] is its inverse:
//
//	chart.SignInHouse(7, 1)  // 7 (Libra rises)
//	chart.SignInHouse(7, 7)  // 1 (Aries opposite)
//	chart.HouseOfSign(7, 10) // 4 (Capricorn in the 4th)
//
// Both functions panic on arguments outside 1..12. Silent clamping would
// draw a plausible but wrong chart, so range errors are caller bugs.
//
// # Planets
//
// [Planet] records are created by the resolver and never mutated. [Code]
// returns the two-letter label used on the chart face (Su, Mo, Ma, ...),
// and [ClassicalDignity] looks up the exaltation and debilitation signs of
// the seven visible grahas.
package chart
