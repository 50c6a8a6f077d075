package styles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/kundli/pkg/layout"
	"github.com/matzehuels/kundli/pkg/placement"
)

func TestSimpleRenderDefsUsesPalette(t *testing.T) {
	s := NewSimple()
	s.Palette.Planet = "#123456"

	var buf bytes.Buffer
	s.RenderDefs(&buf)
	out := buf.String()

	for _, want := range []string{"#FEF3C7", "#123456", "stroke-width: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("defs missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleRenderFrame(t *testing.T) {
	var buf bytes.Buffer
	NewSimple().RenderFrame(&buf, layout.Frame())
	out := buf.String()

	if got := strings.Count(out, "<line"); got != len(layout.Frame()) {
		t.Errorf("line count = %d, want %d", got, len(layout.Frame()))
	}
	if !strings.Contains(out, `<rect x="20" y="20" width="360" height="360"`) {
		t.Errorf("background rect missing:\n%s", out)
	}
}

func TestSimpleRenderPlanetEscapesAndMarks(t *testing.T) {
	p := placement.Placement{TargetID: "A&B", X: 10, Y: 20, Label: "A&↑ 3°", Retrograde: true}

	var buf bytes.Buffer
	s := NewSimple()
	s.MarkRetrograde = true
	s.RenderPlanet(&buf, p)
	out := buf.String()

	if !strings.Contains(out, `id="planet-A&amp;B"`) {
		t.Errorf("id not escaped: %s", out)
	}
	if !strings.Contains(out, ">A&amp;↑ 3° R<") {
		t.Errorf("label not escaped or marked: %s", out)
	}
}

func TestPaletteMergeAndValidate(t *testing.T) {
	base, ok := PaletteByName("Classic")
	if !ok {
		t.Fatal("classic palette missing")
	}
	merged := base.Merge(Palette{Planet: "navy"})
	if merged.Planet != "navy" || merged.Background != base.Background {
		t.Errorf("Merge = %+v", merged)
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	bad := base.Merge(Palette{Stroke: "red; } .x { fill: url(evil)"})
	if err := bad.Validate(); err == nil {
		t.Error("Validate() accepted CSS injection")
	}

	if len(PaletteNames()) != 3 {
		t.Errorf("PaletteNames() = %v", PaletteNames())
	}
}
