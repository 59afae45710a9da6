package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// SnapshotKey converts a path relative to a scan root into the
// separator-agnostic key used by snapshots (forward slashes, cleaned)
func SnapshotKey(relPath string) string {
	return filepath.ToSlash(filepath.Clean(relPath))
}

// FromSnapshotKey joins a snapshot key back onto its root using the
// platform separator
func FromSnapshotKey(root, key string) string {
	return filepath.Join(root, filepath.FromSlash(key))
}

// IsUNCPath checks if a path is a UNC path (Windows network share)
func IsUNCPath(path string) bool {
	if runtime.GOOS != "windows" {
		return false
	}
	return strings.HasPrefix(path, "\\\\") || strings.HasPrefix(path, "//")
}

// IsAbsolute checks if a path is absolute
func IsAbsolute(path string) bool {
	if IsUNCPath(path) {
		return true
	}
	return filepath.IsAbs(path)
}

// ValidateSubfolder checks a relocation destination. It must be a
// non-empty path that stays inside the root it is joined to.
func ValidateSubfolder(name string) error {
	if strings.TrimSpace(name) == "" {
		return &PathError{Path: name, Message: "path is empty"}
	}
	if IsAbsolute(name) {
		return &PathError{Path: name, Message: "path must be relative to the compared root"}
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return &PathError{Path: name, Message: "path escapes the compared root"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(name, char) {
				return &PathError{Path: name, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// IsWithin reports whether path is root itself or lies below it
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
