// Package errors provides the coded errors shared by the kundli library,
// CLI and HTTP server.
//
// Every failure that crosses a package boundary carries a [Code]. Codes are
// grouped into a few [Kind]s so that front ends can decide on a response
// (exit status, HTTP status, error-state chart) without listing codes:
//
//	err := errors.New(errors.ErrCodeInvalidChartData, "planet %q: unknown sign %q", name, sign)
//	if errors.KindOf(err) == errors.KindChart {
//	    // draw the error-state frame
//	}
//
// [Wrap] keeps the cause for [errors.Is] and [errors.As] from the standard
// library, while [Is] here matches on codes anywhere in the chain.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code. It is stable and appears in
// server responses.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidURL       Code = "INVALID_URL"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidChartData Code = "INVALID_CHART_DATA"
	ErrCodeNoChartData      Code = "NO_CHART_DATA"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeNetwork          Code = "NETWORK_ERROR"
	ErrCodeTimeout          Code = "TIMEOUT"
	ErrCodeInternal         Code = "INTERNAL_ERROR"
)

// Kind groups codes by who has to act on them.
type Kind int

const (
	// KindInternal is a bug or an uncoded error.
	KindInternal Kind = iota
	// KindInput is a malformed request, payload syntax or config.
	KindInput
	// KindChart is a payload that decodes but holds no usable chart.
	KindChart
	// KindUpstream is a failure of a remote payload source.
	KindUpstream
)

// Kind returns the group of c.
func (c Code) Kind() Kind {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidURL, ErrCodeInvalidConfig:
		return KindInput
	case ErrCodeInvalidChartData, ErrCodeNoChartData:
		return KindChart
	case ErrCodeNotFound, ErrCodeNetwork, ErrCodeTimeout:
		return KindUpstream
	}
	return KindInternal
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any coded error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of err's outermost code.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// UserMessage returns the outermost coded message without its code, or the
// plain error text for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
