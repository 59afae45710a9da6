package models

import (
	"time"
)

// Report row categories
const (
	CategoryMissing    = "Missing in Target"
	CategoryExtra      = "Extra in Target"
	CategoryMismatched = "Content Mismatches"
	CategoryStatus     = "Status"
)

// StatusIdentical is the message of the single row emitted for identical trees
const StatusIdentical = "identical"

// ReportRow is one category of a rendered reconciliation result
type ReportRow struct {
	Category string   `json:"category"`
	Paths    []string `json:"paths,omitempty"`
	Count    int      `json:"count"`
	Message  string   `json:"message,omitempty"`
}

// ReportRows is the structured summary of a reconciliation result
type ReportRows []ReportRow

// RunReport represents the results of a compare run
type RunReport struct {
	// Run details
	RunID        string
	SourcePath   string
	TargetPath   string
	CheckContent bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Snapshot sizes
	SourceFiles int
	TargetFiles int

	Result *ReconciliationResult
	Rows   ReportRows

	// ScanErrors are the files skipped while scanning either tree
	ScanErrors []*FileError

	// Outcome is nil when no action was applied
	Outcome *ActionOutcome

	// Overall status
	Status RunStatus
}

// RunStatus represents the overall result
type RunStatus string

const (
	// StatusSuccess indicates every file was scanned and every action succeeded
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some files were skipped or failed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run failed
	StatusFailed RunStatus = "failed"
	// StatusAborted indicates a destructive action was declined
	StatusAborted RunStatus = "aborted"
)

// ExitCode returns the appropriate exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	case StatusAborted:
		return 3
	default:
		return 2
	}
}
