package errors

import (
	"strings"
	"unicode"
)

// ValidateSpan validates a span value for an alignment category.
// Spans count newlines, so they must be non-negative; zero disables the
// category entirely.
func ValidateSpan(name string, span int) error {
	if span < 0 {
		return New(ErrCodeInvalidOptions, "%s: span cannot be negative (got %d)", name, span)
	}
	const maxSpan = 1 << 16
	if span > maxSpan {
		return New(ErrCodeInvalidOptions, "%s: span too large (max %d)", name, maxSpan)
	}
	return nil
}

// ValidateThreshold validates a column-deviation threshold.
// Zero disables tolerance checking; negative values are invalid.
func ValidateThreshold(name string, thresh int) error {
	if thresh < 0 {
		return New(ErrCodeInvalidOptions, "%s: threshold cannot be negative (got %d)", name, thresh)
	}
	return nil
}

// ValidateCategoryName validates an alignment category name from user
// input (option files, API requests). The canonical names are lowercase
// snake_case; resolution against the known set happens in pkg/chunk.
func ValidateCategoryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidCategory, "category name cannot be empty")
	}
	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_' {
			return New(ErrCodeInvalidCategory, "invalid category name: %q", name)
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
