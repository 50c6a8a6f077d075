package sink

import (
	"encoding/json"

	"github.com/matzehuels/kundli/pkg/chart"
	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/placement"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	chart  *chart.Chart
	indent bool
}

// WithJSONChart embeds the canonical chart next to the placements.
func WithJSONChart(c *chart.Chart) JSONOption { return func(r *jsonRenderer) { r.chart = c } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonCanvas struct {
	Size    int `json:"size"`
	Padding int `json:"padding"`
}

type jsonOutput struct {
	Canvas jsonCanvas `json:"canvas"`
	*placement.Model
	Chart *chart.Chart `json:"chart,omitempty"`
}

// RenderJSON exports the placed chart. The placements appear under the
// top-level planets, signNumbers and signGlyphs keys.
func RenderJSON(m *placement.Model, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Canvas: jsonCanvas{Size: layout.CanvasSize, Padding: layout.Padding},
		Model:  m,
		Chart:  r.chart,
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// ReadJSON decodes the placements written by [RenderJSON].
func ReadJSON(data []byte) (*placement.Model, error) {
	var m placement.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
