// Package errors provides structured error types for stackchart.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Non-fatal configuration warnings that name the offending element
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration and input validation failures
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// Domain errors (an out-of-domain category lookup, a non-positive value on a
// log scale) are never reported through this package. They surface as an ok
// flag on the operation so that charts tolerate transiently invalid data.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScale, "range span is zero: %v", r)
//	if errors.Is(err, errors.ErrCodeInvalidScale) {
//	    // render nothing for this element
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidScale      Code = "INVALID_SCALE"
	ErrCodeInvalidGradient   Code = "INVALID_GRADIENT"
	ErrCodeInvalidSeries     Code = "INVALID_SERIES"
	ErrCodeInvalidTransition Code = "INVALID_TRANSITION"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Warning is a non-fatal configuration problem attached to a single chart
// element. The element is skipped and its siblings keep rendering.
type Warning struct {
	Element string // Series, axis or gradient identifier
	Err     error
}

// Error implements the error interface.
func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Element, w.Err)
}

// Unwrap returns the underlying error.
func (w Warning) Unwrap() error { return w.Err }

// Code returns the error code of the underlying error.
func (w Warning) Code() Code { return GetCode(w.Err) }
