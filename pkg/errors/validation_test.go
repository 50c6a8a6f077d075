package errors

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid https", "https://api.example.com/v1/chart", false},
		{"valid http with port", "http://localhost:8080/chart?id=1", false},
		{"uppercase scheme", "HTTPS://example.com/", false},

		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com/chart.json", true},
		{"no scheme", "example.com/chart", true},
		{"no host", "https:///chart", true},
		{"control char", "https://example.com/\x01", true},
		{"newline", "https://example.com/\nchart", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidURL) {
				t.Errorf("ValidateURL(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidURL)
			}
		})
	}
}

func TestValidatePayloadSize(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"small", 512, false},
		{"exact max", MaxPayloadBytes, false},
		{"empty", 0, true},
		{"too large", MaxPayloadBytes + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayloadSize(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePayloadSize(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
		})
	}
}
