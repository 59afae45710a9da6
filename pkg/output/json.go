package output

import (
	"encoding/json"
	"io"

	"github.com/sdejongh/foldermatch/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONReport is the document written by JSONFormatter
type JSONReport struct {
	RunID        string            `json:"run_id"`
	SourcePath   string            `json:"source_path"`
	TargetPath   string            `json:"target_path"`
	CheckContent bool              `json:"check_content"`
	StartTime    string            `json:"start_time"`
	DurationMs   int64             `json:"duration_ms"`
	SourceFiles  int               `json:"source_files"`
	TargetFiles  int               `json:"target_files"`
	Matched      int               `json:"matched"`
	Rows         models.ReportRows `json:"rows"`
	ScanErrors   []JSONFileError   `json:"scan_errors,omitempty"`
	Action       *JSONOutcome      `json:"action,omitempty"`
	Status       string            `json:"status"`
}

// JSONFileError represents a skipped or failed file
type JSONFileError struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// JSONRelocation represents one moved file
type JSONRelocation struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Overwrote bool   `json:"overwrote,omitempty"`
}

// JSONOutcome represents the applied action
type JSONOutcome struct {
	Kind      string           `json:"kind"`
	Subfolder string           `json:"subfolder,omitempty"`
	State     string           `json:"state"`
	Aborted   bool             `json:"aborted"`
	Moved     []JSONRelocation `json:"moved,omitempty"`
	Deleted   []string         `json:"deleted,omitempty"`
	Skipped   []string         `json:"skipped,omitempty"`
	Vanished  []string         `json:"vanished,omitempty"`
	Failures  []JSONFileError  `json:"failures,omitempty"`
}

// Write encodes the report as indented JSON
func (f *JSONFormatter) Write(writer io.Writer, report *models.RunReport) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildJSONReport(report))
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// BuildJSONReport converts a run report into its JSON document
func BuildJSONReport(report *models.RunReport) JSONReport {
	out := JSONReport{
		RunID:        report.RunID,
		SourcePath:   report.SourcePath,
		TargetPath:   report.TargetPath,
		CheckContent: report.CheckContent,
		StartTime:    report.StartTime.UTC().Format("2006-01-02T15:04:05Z07:00"),
		DurationMs:   report.Duration.Milliseconds(),
		SourceFiles:  report.SourceFiles,
		TargetFiles:  report.TargetFiles,
		Rows:         report.Rows,
		ScanErrors:   jsonFileErrors(report.ScanErrors),
		Status:       string(report.Status),
	}
	if report.Result != nil {
		out.Matched = report.Result.MatchedCount
	}

	if o := report.Outcome; o != nil {
		action := &JSONOutcome{
			Kind:      string(o.Action.Kind),
			Subfolder: o.Action.Subfolder,
			State:     string(o.State),
			Aborted:   o.Aborted,
			Deleted:   o.Deleted,
			Skipped:   o.Skipped,
			Vanished:  o.Vanished,
			Failures:  jsonFileErrors(o.Failures),
		}
		for _, m := range o.Moved {
			action.Moved = append(action.Moved, JSONRelocation{From: m.From, To: m.To, Overwrote: m.Overwrote})
		}
		out.Action = action
	}

	return out
}

func jsonFileErrors(errs []*models.FileError) []JSONFileError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]JSONFileError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, JSONFileError{Path: fe.Path, Op: fe.Op, Error: fe.Err.Error()})
	}
	return out
}
