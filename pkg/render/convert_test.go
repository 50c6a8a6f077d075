package render

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/matzehuels/kundli/pkg/errors"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400"><rect x="20" y="20" width="360" height="360" fill="none" stroke="black"/></svg>`

func TestConvert(t *testing.T) {
	if _, err := exec.LookPath(ConverterBinary); err != nil {
		t.Skipf("%s not installed", ConverterBinary)
	}

	png, err := ToPNG([]byte(square), 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG output is not a PNG")
	}

	pdf, err := ToPDF([]byte(square))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF output is not a PDF")
	}
}

func TestConvertMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := ToPDF([]byte(square))
	if err == nil {
		t.Fatal("expected error without converter on PATH")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInternal)
	}
}
