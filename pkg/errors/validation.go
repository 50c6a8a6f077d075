package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxPayloadBytes bounds the size of a chart payload accepted from the network.
// Real payloads are a few kilobytes; anything larger is not a chart.
const MaxPayloadBytes = 1 << 20

// ValidateURL validates a payload URL before it is fetched.
//
// Validation rules:
//   - URL cannot be empty
//   - No control characters
//   - Scheme must be http or https
//   - Host must be present
func ValidateURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidURL, "url cannot be empty")
	}

	for _, r := range raw {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "url contains invalid control characters")
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "malformed url")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return New(ErrCodeInvalidURL, "unsupported url scheme %q (must be http or https)", u.Scheme)
	}

	if u.Host == "" {
		return New(ErrCodeInvalidURL, "url has no host")
	}
	return nil
}

// ValidatePayloadSize rejects empty payloads and payloads over MaxPayloadBytes.
func ValidatePayloadSize(n int) error {
	if n == 0 {
		return New(ErrCodeInvalidInput, "payload is empty")
	}
	if n > MaxPayloadBytes {
		return New(ErrCodeInvalidInput, "payload too large (%d bytes, max %d)", n, MaxPayloadBytes)
	}
	return nil
}
