package models

import (
	"sort"
)

// PathSet is an unordered set of relative paths
type PathSet map[string]struct{}

// NewPathSet creates a set holding the given paths
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts path into the set
func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether path is in the set
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Len returns the set size
func (s PathSet) Len() int {
	return len(s)
}

// Sorted returns the members in lexicographic order.
// Any rendering of a set must go through Sorted.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ReconciliationResult classifies the paths of two snapshots
type ReconciliationResult struct {
	// Missing holds paths present in source but absent from target
	Missing PathSet

	// Extra holds paths present in target but absent from source
	Extra PathSet

	// Mismatched holds common paths whose fingerprints differ.
	// Only populated when content checking is enabled.
	Mismatched PathSet

	// MatchedCount is the number of common paths considered identical
	MatchedCount int
}

// NewReconciliationResult returns a result with empty, non-nil sets
func NewReconciliationResult() *ReconciliationResult {
	return &ReconciliationResult{
		Missing:    make(PathSet),
		Extra:      make(PathSet),
		Mismatched: make(PathSet),
	}
}

// Identical reports whether no differences were found
func (r *ReconciliationResult) Identical() bool {
	return r.Missing.Len() == 0 && r.Extra.Len() == 0 && r.Mismatched.Len() == 0
}

// Unpaired returns the number of files present in exactly one tree
func (r *ReconciliationResult) Unpaired() int {
	return r.Missing.Len() + r.Extra.Len()
}
