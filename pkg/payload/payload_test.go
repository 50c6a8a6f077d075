package payload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kundli/pkg/errors"
)

const jsonChart = `{"data": {"rasiChart": {"ascendant": {"signId": 7}, "planets": [{"name": "Sun", "signId": 7, "degree": 12.5}]}}}`

const yamlChart = `
data:
  rasiChart:
    ascendant:
      signId: 7
    planets:
      - name: Sun
        signId: 7
        degree: 12.5
`

func TestDecodeYAMLMatchesJSON(t *testing.T) {
	fromJSON, err := Decode([]byte(jsonChart), FormatAuto)
	require.NoError(t, err)
	fromYAML, err := Decode([]byte(yamlChart), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)
}

func TestDecodeNormalizesYAML(t *testing.T) {
	v, err := Decode([]byte("1: one\nlist: [1, 2.5]\n"), FormatYAML)
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok, "got %T", v)
	assert.Equal(t, "one", m["1"])
	assert.Equal(t, []any{1.0, 2.5}, m["list"])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"empty", "", FormatAuto, errors.ErrCodeInvalidInput},
		{"bad json", `{"data": `, FormatJSON, errors.ErrCodeInvalidFormat},
		{"bad yaml", "a: [b", FormatYAML, errors.ErrCodeInvalidFormat},
		{"too large", strings.Repeat(" ", errors.MaxPayloadBytes+1), FormatJSON, errors.ErrCodeInvalidInput},
		{"unknown format", "{}", Format("toml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "chart.json")
	yamlPath := filepath.Join(dir, "chart.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonChart), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlChart), 0o644))

	a, err := Import(jsonPath, FormatAuto)
	require.NoError(t, err)
	b, err := Import(yamlPath, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Import(filepath.Join(dir, "missing.json"), FormatAuto)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlChart), 0o644))

	data, hint, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, hint)
	assert.Equal(t, yamlChart, string(data))
}

func TestRead(t *testing.T) {
	v, err := Read(strings.NewReader(`[1, 2]`), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, v)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
