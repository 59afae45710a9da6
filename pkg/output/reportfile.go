package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/foldermatch/pkg/models"
)

// WriteReportFile writes the report to path using the named format
func WriteReportFile(report *models.RunReport, path string, format string) error {
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := formatter.Write(file, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return file.Close()
}
