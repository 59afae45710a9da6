package models

import (
	"sort"
)

// DirectorySnapshot maps relative paths (forward-slash form) to fingerprints
// for one directory tree at one point in time. It is read-only once built.
type DirectorySnapshot struct {
	root    string
	entries map[string]FileFingerprint
}

// NewDirectorySnapshot builds a snapshot from the given entries.
// The map is copied so later writes by the caller are not observed.
func NewDirectorySnapshot(root string, entries map[string]FileFingerprint) *DirectorySnapshot {
	copied := make(map[string]FileFingerprint, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &DirectorySnapshot{root: root, entries: copied}
}

// Root returns the directory the snapshot was taken from
func (s *DirectorySnapshot) Root() string {
	return s.root
}

// Len returns the number of files in the snapshot
func (s *DirectorySnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Get returns the fingerprint stored for path
func (s *DirectorySnapshot) Get(path string) (FileFingerprint, bool) {
	if s == nil {
		return FileFingerprint{}, false
	}
	fp, ok := s.entries[path]
	return fp, ok
}

// Has reports whether path is present in the snapshot
func (s *DirectorySnapshot) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Paths returns every key in lexicographic order
func (s *DirectorySnapshot) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// TotalBytes sums the sizes of all files in the snapshot
func (s *DirectorySnapshot) TotalBytes() uint64 {
	if s == nil {
		return 0
	}
	var total uint64
	for _, fp := range s.entries {
		total += fp.Size
	}
	return total
}
