package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// documentExtensions are the file extensions a call-sheet document may use.
var documentExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateDocumentFilename validates a document filename for safety.
// It accepts a path but checks only the final element:
//   - non-empty, not a hidden file
//   - a .json, .yaml, .yml or .toml extension
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDocument, "document filename cannot be empty")
	}

	base := filepath.Base(filename)
	if strings.HasPrefix(base, ".") {
		return New(ErrCodeInvalidDocument, "document filename cannot be a hidden file")
	}

	ext := strings.ToLower(filepath.Ext(base))
	if !documentExtensions[ext] {
		return New(ErrCodeInvalidDocument, "unsupported document extension %q (want .json, .yaml, .yml or .toml)", ext)
	}

	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are allowed; output files are written wherever the user asks.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
