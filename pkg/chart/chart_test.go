package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChartHouseOf(t *testing.T) {
	c := &Chart{
		Ascendant: Ascendant{Sign: Libra},
		Planets: []Planet{
			{Name: "Sun", Sign: Libra},
			{Name: "Mars", Sign: Capricorn},
			{Name: "Moon", Sign: Virgo},
			{Name: "Bad", Sign: 0},
		},
	}
	assert.Equal(t, 1, c.HouseOf(c.Planets[0]))
	assert.Equal(t, 4, c.HouseOf(c.Planets[1]))
	assert.Equal(t, 12, c.HouseOf(c.Planets[2]))
	assert.Equal(t, 0, c.HouseOf(c.Planets[3]))

	assert.Equal(t, Aries, c.SignOfHouse(7))
	assert.Equal(t, []Planet{{Name: "Mars", Sign: Capricorn}}, c.PlanetsInHouse(4))
	assert.Empty(t, c.PlanetsInHouse(5))
}

func TestChartMismatches(t *testing.T) {
	c := &Chart{Ascendant: Ascendant{Sign: Aries}}
	assert.Nil(t, c.Mismatches(), "derived houses never mismatch")

	c.Houses.Source = HousesByName
	for h := 1; h <= NumSigns; h++ {
		c.Houses.Declared[h-1] = Sign(h)
	}
	assert.Empty(t, c.Mismatches())

	c.Houses.Declared[2] = Leo
	c.Houses.Declared[5] = 0
	assert.Equal(t, []int{3}, c.Mismatches())
}
