package styles

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Palette holds the CSS colors of a chart.
type Palette struct {
	Background string `toml:"background" json:"background"`
	Stroke     string `toml:"stroke" json:"stroke"`
	SignNumber string `toml:"sign_number" json:"signNumber"`
	Planet     string `toml:"planet" json:"planet"`
	Glyph      string `toml:"glyph" json:"glyph"`
	Error      string `toml:"error" json:"error"`
	Muted      string `toml:"muted" json:"muted"`
}

var palettes = map[string]Palette{
	"classic": {
		Background: "#FEF3C7",
		Stroke:     "#000",
		SignNumber: "#e6262c",
		Planet:     "#198754",
		Glyph:      "#8b5cf6",
		Error:      "#f00",
		Muted:      "#999",
	},
	"dark": {
		Background: "#1f2937",
		Stroke:     "#e5e7eb",
		SignNumber: "#f87171",
		Planet:     "#34d399",
		Glyph:      "#a78bfa",
		Error:      "#f87171",
		Muted:      "#9ca3af",
	},
	"mono": {
		Background: "#fff",
		Stroke:     "#000",
		SignNumber: "#000",
		Planet:     "#000",
		Glyph:      "#444",
		Error:      "#000",
		Muted:      "#666",
	},
}

// PaletteByName returns a built-in palette.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[strings.ToLower(name)]
	return p, ok
}

// PaletteNames lists the built-in palettes in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns p with every non-empty color of override applied.
func (p Palette) Merge(override Palette) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Background, override.Background)
	set(&p.Stroke, override.Stroke)
	set(&p.SignNumber, override.SignNumber)
	set(&p.Planet, override.Planet)
	set(&p.Glyph, override.Glyph)
	set(&p.Error, override.Error)
	set(&p.Muted, override.Muted)
	return p
}

var cssColor = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+)$`)

// Validate rejects values that are not hex colors or color keywords.
// Palette values are written into a <style> block unescaped.
func (p Palette) Validate() error {
	for name, v := range map[string]string{
		"background": p.Background, "stroke": p.Stroke, "sign_number": p.SignNumber,
		"planet": p.Planet, "glyph": p.Glyph, "error": p.Error, "muted": p.Muted,
	} {
		if v != "" && !cssColor.MatchString(v) {
			return fmt.Errorf("color %s: invalid value %q", name, v)
		}
	}
	return nil
}
