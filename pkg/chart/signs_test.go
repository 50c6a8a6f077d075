package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignByName(t *testing.T) {
	for i, name := range signNames {
		s, ok := SignByName(name)
		require.True(t, ok, name)
		assert.Equal(t, Sign(i+1), s)
	}

	s, ok := SignByName("Capricorn")
	require.True(t, ok)
	assert.Equal(t, Sign(10), s)

	_, ok = SignByName("capricorn")
	assert.False(t, ok, "exact match is case-sensitive")

	_, ok = SignByName("Nonexistent")
	assert.False(t, ok)
}

func TestParseSign(t *testing.T) {
	tests := []struct {
		in   string
		want Sign
		ok   bool
	}{
		{"Aries", Aries, true},
		{" pisces ", Pisces, true},
		{"Makara", Capricorn, true},
		{"tula", Libra, true},
		{"10", Capricorn, true},
		{"0", 0, false},
		{"13", 0, false},
		{"", 0, false},
		{"Ophiuchus", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSign(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignAccessors(t *testing.T) {
	assert.Equal(t, "Libra", Libra.Name())
	assert.Equal(t, "♎", Libra.Glyph())
	assert.Equal(t, "Tula", Libra.Sanskrit())
	assert.Equal(t, "♈", Aries.Glyph())
	assert.Equal(t, "♓", Pisces.Glyph())

	bad := Sign(0)
	assert.False(t, bad.Valid())
	assert.Equal(t, "Sign(0)", bad.Name())
	assert.Empty(t, bad.Glyph())
	assert.Empty(t, bad.Sanskrit())

	assert.Len(t, Signs(), NumSigns)
	assert.Equal(t, Aries, Signs()[0])
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sun", "Su"},
		{"Moon", "Mo"},
		{"Mars", "Ma"},
		{"Mercury", "Me"},
		{"Jupiter", "Ju"},
		{"Venus", "Ve"},
		{"Saturn", "Sa"},
		{"Rahu", "Ra"},
		{"Ketu", "Ke"},
		{"jupiter", "Ju"},
		{"Uranus", "Ur"},
		{"Pluto", "Pl"},
		{"X", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Code(tt.name))
		})
	}
}

func TestDignity(t *testing.T) {
	assert.Equal(t, "↑", DignityExalted.Marker())
	assert.Equal(t, "↓", DignityDebilitated.Marker())
	assert.Empty(t, DignityNone.Marker())

	assert.Equal(t, DignityExalted, ParseDignity("Exalted"))
	assert.Equal(t, DignityDebilitated, ParseDignity(" debilitated "))
	assert.Equal(t, DignityNone, ParseDignity("Own Sign"))

	b, err := json.Marshal(struct{ D Dignity }{DignityExalted})
	require.NoError(t, err)
	assert.JSONEq(t, `{"D":"exalted"}`, string(b))
}

func TestClassicalDignity(t *testing.T) {
	assert.Equal(t, DignityExalted, ClassicalDignity("Sun", Aries))
	assert.Equal(t, DignityDebilitated, ClassicalDignity("Sun", Libra))
	assert.Equal(t, DignityExalted, ClassicalDignity("saturn", Libra))
	assert.Equal(t, DignityNone, ClassicalDignity("Moon", Leo))
	assert.Equal(t, DignityNone, ClassicalDignity("Rahu", Taurus))
	assert.Equal(t, DignityNone, ClassicalDignity("Pluto", Sign(0)))
}
