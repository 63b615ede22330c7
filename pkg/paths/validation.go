package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/promptfill/pkg/errors"
)

// MaxPathLength is the longest path accepted (common filesystem limit)
const MaxPathLength = 4096

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > MaxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// SanitizePath cleans a path for comparison.
// It expands ~, normalizes separators and resolves . and .. elements.
func SanitizePath(path string) string {
	path = ExpandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}

	return cleaned
}

// IsAbsolutePath returns true if the path is absolute.
// This is a cross-platform wrapper around filepath.IsAbs.
func IsAbsolutePath(path string) bool {
	return filepath.IsAbs(path)
}

// ContainsPath checks if child is equal to or nested under parent.
// Both paths are normalized before comparison; no filesystem access happens.
func ContainsPath(parent, child string) bool {
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
