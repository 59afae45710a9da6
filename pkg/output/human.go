package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sdejongh/foldermatch/pkg/models"
)

// HumanFormatter formats output as a plain-text table
type HumanFormatter struct{}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Write prints the comparison table followed by any action outcome
func (f *HumanFormatter) Write(writer io.Writer, report *models.RunReport) error {
	fmt.Fprintf(writer, "Source: %s (%d files)\n", report.SourcePath, report.SourceFiles)
	fmt.Fprintf(writer, "Target: %s (%d files)\n\n", report.TargetPath, report.TargetFiles)

	fmt.Fprintf(writer, "Folder Comparison Results\n")
	if err := writeRows(writer, report.Rows); err != nil {
		return err
	}

	if report.Result != nil {
		fmt.Fprintf(writer, "\nMatched: %d\n", report.Result.MatchedCount)
	}
	if !report.CheckContent {
		fmt.Fprintf(writer, "Content: not checked\n")
	}

	if len(report.ScanErrors) > 0 {
		fmt.Fprintf(writer, "\nSkipped while scanning:\n")
		for _, fe := range report.ScanErrors {
			fmt.Fprintf(writer, "  %s: %v\n", fe.Path, fe.Err)
		}
	}

	if o := report.Outcome; o != nil {
		writeOutcome(writer, o)
	}

	fmt.Fprintf(writer, "\nCompleted in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(writer, "Status: %s\n", report.Status)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

func writeRows(writer io.Writer, rows models.ReportRows) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Category\tFiles\tCount\n")
	fmt.Fprintf(tw, "--------\t-----\t-----\n")

	for _, r := range rows {
		if r.Category == models.CategoryStatus {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Category, statusText(r.Message), r.Count)
			continue
		}
		for i, p := range r.Paths {
			if i == 0 {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Category, p, strconv.Itoa(r.Count))
			} else {
				fmt.Fprintf(tw, "\t%s\t\n", p)
			}
		}
	}

	return tw.Flush()
}

func statusText(message string) string {
	if message == models.StatusIdentical {
		return "Folders are identical!"
	}
	return message
}

func writeOutcome(writer io.Writer, o *models.ActionOutcome) {
	fmt.Fprintf(writer, "\nAction: %s\n", o.Action)

	if o.Aborted {
		fmt.Fprintf(writer, "  Aborted: no files were changed\n")
		return
	}

	for _, m := range o.Moved {
		note := ""
		if m.Overwrote {
			note = " (overwrote existing file)"
		}
		fmt.Fprintf(writer, "  moved   %s -> %s%s\n", m.From, m.To, note)
	}
	for _, d := range o.Deleted {
		fmt.Fprintf(writer, "  deleted %s\n", d)
	}
	for _, sk := range o.Skipped {
		fmt.Fprintf(writer, "  already in place: %s\n", sk)
	}
	for _, v := range o.Vanished {
		fmt.Fprintf(writer, "  vanished before action: %s\n", v)
	}
	for _, fe := range o.Failures {
		fmt.Fprintf(writer, "  failed  %s: %v\n", fe.Path, fe.Err)
	}

	fmt.Fprintf(writer, "  Files touched: %d, failed: %d\n", o.Touched(), len(o.Failures))
}
