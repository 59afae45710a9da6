package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/foldermatch/pkg/models"
)

func TestRenderIdentical(t *testing.T) {
	rows := Render(models.NewReconciliationResult(), true)

	require.Len(t, rows, 1)
	assert.Equal(t, models.CategoryStatus, rows[0].Category)
	assert.Equal(t, models.StatusIdentical, rows[0].Message)
	assert.Equal(t, 0, rows[0].Count)
}

func TestRenderCategories(t *testing.T) {
	result := models.NewReconciliationResult()
	result.Missing = models.NewPathSet("z.txt", "b.txt")
	result.Extra = models.NewPathSet("c.txt")
	result.Mismatched = models.NewPathSet("m2", "m1")

	rows := Render(result, true)
	require.Len(t, rows, 3)

	assert.Equal(t, models.ReportRow{Category: models.CategoryMissing, Paths: []string{"b.txt", "z.txt"}, Count: 2}, rows[0])
	assert.Equal(t, models.ReportRow{Category: models.CategoryExtra, Paths: []string{"c.txt"}, Count: 1}, rows[1])
	assert.Equal(t, models.ReportRow{Category: models.CategoryMismatched, Paths: []string{"m1", "m2"}, Count: 2}, rows[2])
}

func TestRenderSkipsMismatchesWithoutContentCheck(t *testing.T) {
	result := models.NewReconciliationResult()
	result.Mismatched = models.NewPathSet("m")

	rows := Render(result, false)
	require.Len(t, rows, 1)
	assert.Equal(t, models.CategoryStatus, rows[0].Category)
}

func sampleReport() *models.RunReport {
	result := models.NewReconciliationResult()
	result.Missing = models.NewPathSet("b.txt", "a/raw.cr2")
	result.MatchedCount = 3

	return &models.RunReport{
		RunID:        "run-1",
		SourcePath:   "/src",
		TargetPath:   "/dst",
		CheckContent: false,
		StartTime:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		SourceFiles:  5,
		TargetFiles:  3,
		Result:       result,
		Rows:         Render(result, false),
		ScanErrors:   []*models.FileError{{Path: "/src/locked", Op: "open", Err: errors.New("permission denied")}},
		Outcome: &models.ActionOutcome{
			Action:   models.Relocate("archive"),
			State:    models.StateDone,
			Moved:    []models.Relocation{{From: "/src/b.txt", To: "/src/archive/missing_in_target/b.txt", Overwrote: true}},
			Skipped:  []string{"/src/archive/missing_in_target/old.txt"},
			Vanished: []string{"/src/a/raw.cr2"},
		},
		Status: models.StatusPartial,
	}
}

func TestHumanFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHumanFormatter().Write(&buf, sampleReport()))

	out := buf.String()
	for _, want := range []string{
		"Folder Comparison Results",
		"Missing in Target",
		"a/raw.cr2",
		"b.txt",
		"Matched: 3",
		"Content: not checked",
		"/src/locked: permission denied",
		"Action: relocate(archive)",
		"(overwrote existing file)",
		"already in place: /src/archive/missing_in_target/old.txt",
		"vanished before action: /src/a/raw.cr2",
		"Status: partial",
	} {
		assert.Contains(t, out, want)
	}

	// sorted: a/raw.cr2 is listed before b.txt
	assert.Less(t, strings.Index(out, "a/raw.cr2"), strings.Index(out, "b.txt"))
}

func TestHumanFormatterIdentical(t *testing.T) {
	report := &models.RunReport{
		Result:       models.NewReconciliationResult(),
		Rows:         Render(models.NewReconciliationResult(), true),
		CheckContent: true,
		Status:       models.StatusSuccess,
	}

	var buf bytes.Buffer
	require.NoError(t, NewHumanFormatter().Write(&buf, report))
	assert.Contains(t, buf.String(), "Folders are identical!")
	assert.NotContains(t, buf.String(), "not checked")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Write(&buf, sampleReport()))

	var doc JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, int64(1500), doc.DurationMs)
	assert.Equal(t, 3, doc.Matched)
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, []string{"a/raw.cr2", "b.txt"}, doc.Rows[0].Paths)
	require.Len(t, doc.ScanErrors, 1)
	assert.Equal(t, "permission denied", doc.ScanErrors[0].Error)
	require.NotNil(t, doc.Action)
	assert.Equal(t, "relocate", doc.Action.Kind)
	assert.Equal(t, "archive", doc.Action.Subfolder)
	assert.True(t, doc.Action.Moved[0].Overwrote)
	assert.Equal(t, []string{"/src/archive/missing_in_target/old.txt"}, doc.Action.Skipped)
	assert.Equal(t, []string{"/src/a/raw.cr2"}, doc.Action.Vanished)
	assert.Equal(t, "partial", doc.Status)
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"", "human", "json"} {
		f, err := NewFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "diff.json")

	require.NoError(t, WriteReportFile(sampleReport(), path, "json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	assert.Error(t, WriteReportFile(sampleReport(), path, "yaml"))
}
