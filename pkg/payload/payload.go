package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kundli/pkg/errors"
)

// Format selects the payload syntax.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat reads a format name. The empty string and "auto" select
// FormatAuto; "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown payload format %q (want json or yaml)", s)
}

// Import reads a payload from a file path, or from stdin when path is "-".
func Import(path string, format Format) (any, error) {
	data, hint, err := Load(path)
	if err != nil {
		return nil, err
	}
	if format == FormatAuto {
		format = hint
	}
	return Decode(data, format)
}

// Load returns the raw bytes of a payload file, or of stdin when path is
// "-", along with the format implied by the file extension.
func Load(path string) ([]byte, Format, error) {
	if path == "-" {
		data, err := ReadAll(os.Stdin)
		return data, FormatAuto, err
	}
	hint := FormatAuto
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		hint = FormatYAML
	case ".json":
		hint = FormatJSON
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, hint, errors.Wrap(errors.ErrCodeNotFound, err, "payload file %s", path)
		}
		return nil, hint, err
	}
	defer f.Close()
	data, err := ReadAll(f)
	return data, hint, err
}

// Read reads at most MaxPayloadBytes+1 bytes from r and decodes them.
// Read does not close r.
func Read(r io.Reader, format Format) (any, error) {
	data, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, format)
}

// ReadAll reads at most MaxPayloadBytes+1 bytes from r, enough for Decode
// to reject oversized payloads.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

// Decode decodes a payload held in memory.
func Decode(data []byte, format Format) (any, error) {
	if err := errors.ValidatePayloadSize(len(data)); err != nil {
		return nil, err
	}
	if format == FormatAuto {
		format = sniff(data)
	}

	var v any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json payload")
		}
		return v, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml payload")
		}
		return normalize(v), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown payload format %q", format)
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// normalize converts YAML-decoded values to the JSON value model: maps get
// string keys and all numbers become float64.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	}
	return v
}
