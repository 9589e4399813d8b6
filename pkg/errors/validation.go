package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches series and axis identifiers.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateSeriesID validates a series identifier.
//
// Identifiers end up in SVG element ids, cache keys and log lines, so the
// rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Letters, digits and . _ : - only, starting with a letter or digit
func ValidateSeriesID(id string) error {
	if err := validateIdentifier(id); err != nil {
		return New(ErrCodeInvalidSeries, "series id %q: %s", id, err.Message)
	}
	return nil
}

// ValidateAxisID validates an axis identifier. An empty id is valid and
// refers to the default axis.
func ValidateAxisID(id string) error {
	if id == "" {
		return nil
	}
	if err := validateIdentifier(id); err != nil {
		return New(ErrCodeInvalidConfig, "axis id %q: %s", id, err.Message)
	}
	return nil
}

func validateIdentifier(id string) *Error {
	if id == "" {
		return New(ErrCodeInvalidInput, "cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "too long (max 128 characters)")
	}
	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "contains invalid characters")
	}
	return nil
}

// ValidateOutputPath validates a file path an artifact is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) after cleaning
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(filepath.Clean(path), "..") {
		return New(ErrCodeInvalidPath, "path cannot escape the working directory")
	}

	return nil
}

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	"svg":  true,
	"json": true,
	"png":  true,
	"pdf":  true,
}

// ValidateFormat checks that an artifact format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, png, pdf)", format)
	}
	return nil
}
