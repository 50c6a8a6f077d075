package resolve

import "github.com/matzehuels/kundli/pkg/chart"

// PlaceholderDegree is the nominal degree given to every synthesized planet.
const PlaceholderDegree = 15

// Placeholder builds the deterministic stand-in chart drawn when a payload
// carries no usable chart. The nine grahas are placed one sign apart
// starting at the ascendant: Sun in the ascendant sign, Moon one sign
// later, and so on through Ketu eight signs later.
func Placeholder(asc chart.Sign) *chart.Chart {
	if !asc.Valid() {
		asc = chart.Aries
	}
	planets := make([]chart.Planet, len(chart.Grahas))
	for i, name := range chart.Grahas {
		planets[i] = chart.Planet{
			Name:   name,
			Sign:   chart.Sign((int(asc)-1+i)%chart.NumSigns + 1),
			Degree: PlaceholderDegree,
		}
	}
	return &chart.Chart{
		Ascendant: chart.Ascendant{Sign: asc},
		Planets:   planets,
	}
}
