package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/kundli/pkg/errors"
)

// ConverterBinary is the external SVG converter.
const ConverterBinary = "rsvg-convert"

// ToPNG rasterizes svg at the given scale (1.0 = 400px for a chart).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(svg, "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

// ToPDF converts svg to a single-page PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

func convert(svg []byte, format string, extra ...string) ([]byte, error) {
	bin, err := exec.LookPath(ConverterBinary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err,
			"%s not found (install librsvg to export %s)", ConverterBinary, format)
	}

	args := append([]string{"-f", format}, extra...)
	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", ConverterBinary, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
