package resolve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/errors"
)

// decode parses a JSON literal into the generic payload model.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

const libraChart = `{
	"planets": [
		{"name": "Sun", "signId": 7, "degree": 12.4},
		{"name": "Mars", "sign": "Capricorn", "degree": 28.6, "dignity": "exalted"}
	],
	"ascendant": {"signId": 7, "degree": 3.2}
}`

func TestResolveShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		shape   Shape
		path    string
	}{
		{"data.rasiChart", `{"data": {"rasiChart": ` + libraChart + `}}`, ShapeRasiChart, "$.data.rasiChart"},
		{"rasiChart", `{"rasiChart": ` + libraChart + `}`, ShapeRasiChart, "$.rasiChart"},
		{"data.data.rasiChart", `{"data": {"data": {"rasiChart": ` + libraChart + `}}}`, ShapeRasiChart, "$.data.data.rasiChart"},
		{"chart.rasiChart", `{"chart": {"rasiChart": ` + libraChart + `}}`, ShapeRasiChart, "$.chart.rasiChart"},
		{"data.chart", `{"data": {"chart": ` + libraChart + `}}`, ShapeChart, "$.data.chart"},
		{"chart", `{"chart": ` + libraChart + `}`, ShapeChart, "$.chart"},
		{"bare", libraChart, ShapeBare, "$"},
		{"data bare", `{"data": ` + libraChart + `, "success": true}`, ShapeBare, "$.data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(decode(t, tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, res.Shape)
			assert.Equal(t, tt.path, res.Path)
			assert.False(t, res.Synthesized)
			assert.False(t, res.AscendantInferred)

			c := res.Chart
			assert.Equal(t, chart.Libra, c.Ascendant.Sign)
			assert.InDelta(t, 3.2, c.Ascendant.Degree, 1e-9)
			require.Len(t, c.Planets, 2)
			assert.Equal(t, chart.Planet{Name: "Sun", Sign: chart.Libra, Degree: 12.4}, c.Planets[0])
			assert.Equal(t, chart.Capricorn, c.Planets[1].Sign)
			assert.Equal(t, chart.DignityExalted, c.Planets[1].Dignity)
			assert.Equal(t, 4, c.HouseOf(c.Planets[1]))
		})
	}
}

func TestResolveEnhancedShape(t *testing.T) {
	payload := decode(t, `{
		"houses": [
			{"number": 1, "sign": "Leo"},
			{"number": 2, "sign": "Virgo"},
			{"number": 3, "sign": "Libra"}
		],
		"planets": [{"name": "Moon", "sign": "Cancer", "degree": 2}],
		"ascendant": {"sign": "Leo"}
	}`)

	res, err := Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, ShapeBare, res.Shape)
	c := res.Chart
	assert.Equal(t, chart.Leo, c.Ascendant.Sign)
	assert.Equal(t, chart.HousesByName, c.Houses.Source)
	assert.Equal(t, chart.Virgo, c.Houses.Declared[1])
	assert.Equal(t, chart.Sign(0), c.Houses.Declared[5])
	assert.Empty(t, c.Mismatches())
	assert.Equal(t, 12, c.HouseOf(c.Planets[0]))
}

func TestResolveDeclaredHousesAreInformational(t *testing.T) {
	payload := decode(t, `{
		"planets": [{"name": "Sun", "signId": 1}],
		"ascendant": {"signId": 1},
		"housePositions": [
			{"houseNumber": 1, "signId": 2},
			{"houseNumber": 2, "signId": 3},
			"garbage",
			{"houseNumber": 40, "signId": 3}
		]
	}`)

	res, err := Resolve(payload)
	require.NoError(t, err)
	c := res.Chart
	assert.Equal(t, chart.HousesByNumber, c.Houses.Source)
	assert.Equal(t, []int{1, 2}, c.Mismatches())
	assert.Equal(t, 1, c.HouseOf(c.Planets[0]), "house always derives from sign and ascendant")
}

func TestResolveNameBasedSign(t *testing.T) {
	byName, err := Resolve(decode(t, `{"planets": [{"name": "Mars", "sign": "Capricorn"}], "ascendant": {"signId": 1}}`))
	require.NoError(t, err)
	byID, err := Resolve(decode(t, `{"planets": [{"name": "Mars", "signId": 10}], "ascendant": {"signId": 1}}`))
	require.NoError(t, err)

	assert.Equal(t, chart.Sign(10), byName.Chart.Planets[0].Sign)
	assert.Equal(t, byID.Chart.Planets, byName.Chart.Planets)
}

func TestResolveSignFields(t *testing.T) {
	tests := []struct {
		name   string
		planet string
		sign   chart.Sign
		degree float64
	}{
		{"signId", `{"name": "Sun", "signId": 5, "degree": 10}`, chart.Leo, 10},
		{"signId string", `{"name": "Sun", "signId": "5"}`, chart.Leo, 0},
		{"sign name", `{"name": "Sun", "sign": "Leo"}`, chart.Leo, 0},
		{"sign numeric", `{"name": "Sun", "sign": 5}`, chart.Leo, 0},
		{"sign numeric string", `{"name": "Sun", "sign": "5"}`, chart.Leo, 0},
		{"sign name padded", `{"name": "Sun", "sign": " Leo "}`, chart.Leo, 0},
		{"signIndex", `{"name": "Sun", "signIndex": 4}`, chart.Leo, 0},
		{"longitude", `{"name": "Sun", "longitude": 135.5}`, chart.Leo, 15.5},
		{"negative longitude", `{"name": "Sun", "longitude": -10}`, chart.Pisces, 20},
		{"longitude wraps", `{"name": "Sun", "longitude": 365}`, chart.Aries, 5},
		{"signId wins over sign", `{"name": "Sun", "signId": 5, "sign": "Aries"}`, chart.Leo, 0},
		{"degree wins over longitude", `{"name": "Sun", "longitude": 135.5, "degree": 1}`, chart.Leo, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(decode(t, `{"planets": [`+tt.planet+`], "ascendant": {"signId": 1}}`))
			require.NoError(t, err)
			require.Len(t, res.Chart.Planets, 1)
			assert.Equal(t, tt.sign, res.Chart.Planets[0].Sign)
			assert.InDelta(t, tt.degree, res.Chart.Planets[0].Degree, 1e-9)
		})
	}
}

func TestResolveAscendantForms(t *testing.T) {
	tests := []struct {
		name string
		asc  string
		want chart.Sign
	}{
		{"object signId", `{"signId": 9}`, chart.Sagittarius},
		{"object signIndex", `{"signIndex": 8}`, chart.Sagittarius},
		{"object longitude", `{"longitude": 250}`, chart.Sagittarius},
		{"name", `"Sagittarius"`, chart.Sagittarius},
		{"number", `9`, chart.Sagittarius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(decode(t, `{"planets": [], "ascendant": `+tt.asc+`}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Chart.Ascendant.Sign)
			assert.Empty(t, res.Chart.Planets)
		})
	}
}

func TestResolvePlanetaryPositions(t *testing.T) {
	payload := decode(t, `{"rasiChart": {
		"ascendant": {"longitude": 15},
		"planetaryPositions": {
			"uranus":  {"longitude": 300},
			"moon":    {"longitude": 40, "isRetrograde": false},
			"sun":     {"longitude": 10},
			"saturn":  {"longitude": 190, "retrograde": true},
			"neptune": {"longitude": 330}
		}
	}}`)

	res, err := Resolve(payload)
	require.NoError(t, err)

	var names []string
	for _, p := range res.Chart.Planets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Sun", "Moon", "Saturn", "Neptune", "Uranus"}, names)
	assert.True(t, res.Chart.Planets[2].Retrograde)
	assert.False(t, res.Chart.Planets[1].Retrograde)
	assert.Equal(t, chart.Taurus, res.Chart.Planets[1].Sign)
}

func TestResolveDeriveDignity(t *testing.T) {
	payload := decode(t, `{"planets": [
		{"name": "Sun", "signId": 1},
		{"name": "Saturn", "signId": 1},
		{"name": "Moon", "signId": 2, "dignity": "Own Sign"}
	], "ascendant": {"signId": 1}}`)

	res, err := New(Options{DeriveDignity: true}).Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, chart.DignityExalted, res.Chart.Planets[0].Dignity)
	assert.Equal(t, chart.DignityDebilitated, res.Chart.Planets[1].Dignity)
	assert.Equal(t, chart.DignityNone, res.Chart.Planets[2].Dignity, "payload dignity wins")

	res, err = Resolve(payload)
	require.NoError(t, err)
	assert.Equal(t, chart.DignityNone, res.Chart.Planets[0].Dignity)
}

func TestResolveMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"unknown sign name", `{"planets": [{"name": "Mars", "sign": "Nonexistent"}], "ascendant": {"signId": 1}}`},
		{"signId out of range", `{"planets": [{"name": "Mars", "signId": 13}], "ascendant": {"signId": 1}}`},
		{"signId fractional", `{"planets": [{"name": "Mars", "signId": 2.5}], "ascendant": {"signId": 1}}`},
		{"signIndex out of range", `{"planets": [{"name": "Mars", "signIndex": 12}], "ascendant": {"signId": 1}}`},
		{"sign wrong type", `{"planets": [{"name": "Mars", "sign": true}], "ascendant": {"signId": 1}}`},
		{"planet without sign", `{"planets": [{"name": "Mars", "degree": 4}], "ascendant": {"signId": 1}}`},
		{"planet without name", `{"planets": [{"signId": 4}], "ascendant": {"signId": 1}}`},
		{"planet not object", `{"planets": ["Mars"], "ascendant": {"signId": 1}}`},
		{"planets wrong type", `{"planets": "Mars in Capricorn", "ascendant": {"signId": 1}}`},
		{"degree wrong type", `{"planets": [{"name": "Mars", "signId": 2, "degree": "late"}], "ascendant": {"signId": 1}}`},
		{"ascendant unknown name", `{"planets": [], "ascendant": "Serpentarius"}`},
		{"ascendant without sign", `{"planets": [], "ascendant": {"degree": 3}}`},
		{"ascendant out of range", `{"planets": [], "ascendant": 0}`},
		{"nested malformed", `{"data": {"rasiChart": {"planets": [{"name": "Mars", "sign": "Nonexistent"}], "ascendant": {"signId": 1}}}}`},
		{"bad planets without ascendant", `{"chart": {"planets": [{"name": "Mars", "sign": "Nonexistent"}]}}`},
		{"out of range planet without ascendant", `{"planets": [{"name": "Mars", "signId": 0}]}`},
		{"lowercase sign name", `{"planets": [{"name": "Mars", "sign": "capricorn"}], "ascendant": {"signId": 1}}`},
		{"uppercase sign name", `{"planets": [{"name": "Mars", "sign": "CAPRICORN"}], "ascendant": {"signId": 1}}`},
		{"sanskrit sign name", `{"planets": [{"name": "Mars", "sign": "Makara"}], "ascendant": {"signId": 1}}`},
		{"lowercase ascendant name", `{"planets": [], "ascendant": "libra"}`},
		{"sanskrit ascendant name", `{"planets": [], "ascendant": {"sign": "Tula"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(decode(t, tt.payload))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidChartData), "got %v", err)
		})
	}
}

func TestResolveFallbackTotality(t *testing.T) {
	payloads := []string{
		`{}`,
		`null`,
		`[]`,
		`"chart"`,
		`{"status": "ok", "data": {"message": "queued"}}`,
		`{"data": {"rasiChart": {}}}`,
		`{"chart": {"planets": [{"name": "Sun", "signId": 3}]}}`,
	}
	for _, p := range payloads {
		t.Run(p, func(t *testing.T) {
			res, err := Resolve(decode(t, p))
			require.NoError(t, err)
			require.NotNil(t, res.Chart)
			assert.True(t, res.Synthesized)
			assert.Equal(t, chart.Aries, res.Chart.Ascendant.Sign)
			assert.Len(t, res.Chart.Planets, 9)
		})
	}
}

func TestResolveLagnaInference(t *testing.T) {
	t.Run("with planets", func(t *testing.T) {
		payload := decode(t, `{
			"data": {"overview": {"lagna": "Scorpio"}},
			"chart": {"planets": [{"name": "Sun", "signId": 8}]}
		}`)
		res, err := Resolve(payload)
		require.NoError(t, err)
		assert.True(t, res.AscendantInferred)
		assert.False(t, res.Synthesized)
		assert.Equal(t, chart.Scorpio, res.Chart.Ascendant.Sign)
		assert.Equal(t, 1, res.Chart.HouseOf(res.Chart.Planets[0]))
	})

	t.Run("without planets", func(t *testing.T) {
		payload := decode(t, `{"analysis": {"overview": {"lagna": {"sign": "Gemini", "lord": "Mercury"}}}}`)
		res, err := Resolve(payload)
		require.NoError(t, err)
		assert.True(t, res.AscendantInferred)
		assert.True(t, res.Synthesized)
		assert.Equal(t, chart.Gemini, res.Chart.Ascendant.Sign)
		assert.Equal(t, chart.Gemini, res.Chart.Planets[0].Sign)
	})

	t.Run("unreadable lagna is skipped", func(t *testing.T) {
		payload := decode(t, `{"lagna": "unknown", "data": {"lagna": 4}}`)
		res, err := Resolve(payload)
		require.NoError(t, err)
		assert.Equal(t, chart.Cancer, res.Chart.Ascendant.Sign)
	})
}

func TestResolveStrict(t *testing.T) {
	r := New(Options{Strict: true})

	_, err := r.Resolve(decode(t, `{"status": "ok"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNoChartData))

	_, err = r.Resolve(decode(t, `{"planets": [{"name": "Mars", "sign": "Makara"}]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidChartData), "malformed planets outrank missing ascendant, got %v", err)

	res, err := r.Resolve(decode(t, libraChart))
	require.NoError(t, err)
	assert.False(t, res.Synthesized)
}

func TestResolveCustomMatchers(t *testing.T) {
	r := New(Options{Matchers: []Matcher{
		{Shape: "navamsa", Paths: []string{"$.data.navamsaChart"}},
	}})
	res, err := r.Resolve(decode(t, `{"data": {"navamsaChart": `+libraChart+`}}`))
	require.NoError(t, err)
	assert.Equal(t, Shape("navamsa"), res.Shape)
	assert.Len(t, res.Chart.Planets, 2)
}
