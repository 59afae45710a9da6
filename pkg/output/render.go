package output

import (
	"github.com/sdejongh/foldermatch/pkg/models"
)

// Render turns a reconciliation result into report rows: one row per
// non-empty category, paths sorted. Mismatches are only reported when
// checkContent is set. Identical trees yield a single status row.
func Render(result *models.ReconciliationResult, checkContent bool) models.ReportRows {
	rows := models.ReportRows{}

	if result.Missing.Len() > 0 {
		rows = append(rows, row(models.CategoryMissing, result.Missing))
	}
	if result.Extra.Len() > 0 {
		rows = append(rows, row(models.CategoryExtra, result.Extra))
	}
	if checkContent && result.Mismatched.Len() > 0 {
		rows = append(rows, row(models.CategoryMismatched, result.Mismatched))
	}

	if len(rows) == 0 {
		rows = append(rows, models.ReportRow{
			Category: models.CategoryStatus,
			Message:  models.StatusIdentical,
		})
	}

	return rows
}

func row(category string, paths models.PathSet) models.ReportRow {
	sorted := paths.Sorted()
	return models.ReportRow{
		Category: category,
		Paths:    sorted,
		Count:    len(sorted),
	}
}
