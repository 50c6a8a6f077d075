// Package payload reads raw chart payloads into the generic value model the
// resolver works on: map[string]any, []any, float64, string, bool and nil.
//
// # Formats
//
// JSON is the native format of chart APIs. YAML is accepted for hand-written
// fixtures and is normalized to the same model, so a YAML document and its
// JSON equivalent resolve identically:
//
//	v, err := payload.Import("chart.yaml", payload.FormatAuto)
//
// [FormatAuto] picks YAML for .yaml/.yml paths and otherwise sniffs the first
// non-space byte: '{' or '[' means JSON.
//
// # Limits
//
// Payloads are bounded by [errors.MaxPayloadBytes]. Oversized or empty input
// is rejected with INVALID_INPUT before decoding; syntax errors are
// INVALID_FORMAT.
//
// [errors.MaxPayloadBytes]: github.com/matzehuels/kundli/pkg/errors.MaxPayloadBytes
package payload
