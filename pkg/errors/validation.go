package errors

import (
	"strings"
	"unicode"
)

// ValidateServiceName validates a service name from a facts document.
// It rejects names that could not have come from a real source scan.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No whitespace
//   - Maximum length of 256 characters
//
// Scanner-specific identifier rules should be enforced by the extraction
// front end; this is a last line of defense for hand-edited documents.
func ValidateServiceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidService, "service name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidService, "service name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidService, "service name contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidService, "service name contains whitespace: %q", name)
		}
	}

	return nil
}

// ValidateFactsPath validates a facts document path for safety.
// It ensures the path does not contain traversal sequences or null bytes.
func ValidateFactsPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "facts path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "facts path contains null byte")
	}
	return nil
}
