package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdejongh/foldermatch/pkg/models"
)

func fp(size uint64, b byte) models.FileFingerprint {
	return models.FileFingerprint{Size: size, Digest: [models.DigestSize]byte{b}}
}

func snapshot(root string, entries map[string]models.FileFingerprint) *models.DirectorySnapshot {
	return models.NewDirectorySnapshot(root, entries)
}

func TestReconcile(t *testing.T) {
	source := snapshot("/src", map[string]models.FileFingerprint{
		"a.txt": fp(5, 1),
		"b.txt": fp(5, 2),
	})
	target := snapshot("/dst", map[string]models.FileFingerprint{
		"a.txt": fp(5, 9),
		"c.txt": fp(3, 3),
	})

	tests := []struct {
		name         string
		checkContent bool
		mismatched   []string
		matched      int
	}{
		{"NamesOnly", false, []string{}, 1},
		{"WithContent", true, []string{"a.txt"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile(source, target, tt.checkContent)

			assert.Equal(t, []string{"b.txt"}, result.Missing.Sorted())
			assert.Equal(t, []string{"c.txt"}, result.Extra.Sorted())
			assert.Equal(t, tt.mismatched, result.Mismatched.Sorted())
			assert.Equal(t, tt.matched, result.MatchedCount)
		})
	}
}

func TestReconcileIdenticalSnapshots(t *testing.T) {
	snap := snapshot("/src", map[string]models.FileFingerprint{
		"a.txt":     fp(1, 1),
		"dir/b.txt": fp(2, 2),
	})

	result := Reconcile(snap, snap, true)
	assert.True(t, result.Identical())
	assert.Equal(t, 2, result.MatchedCount)
}

func TestReconcileEmpty(t *testing.T) {
	empty := snapshot("/e", nil)

	result := Reconcile(empty, empty, true)
	assert.True(t, result.Identical())
	assert.Equal(t, 0, result.MatchedCount)
}

func TestReconcileSizeMismatch(t *testing.T) {
	source := snapshot("/src", map[string]models.FileFingerprint{"x": fp(10, 1)})
	target := snapshot("/dst", map[string]models.FileFingerprint{"x": fp(11, 1)})

	result := Reconcile(source, target, true)
	assert.Equal(t, []string{"x"}, result.Mismatched.Sorted())
	assert.Equal(t, 0, result.MatchedCount)
}

func TestReconcileSymmetry(t *testing.T) {
	a := snapshot("/a", map[string]models.FileFingerprint{
		"only-a": fp(1, 1),
		"both":   fp(2, 2),
		"diff":   fp(3, 3),
	})
	b := snapshot("/b", map[string]models.FileFingerprint{
		"only-b": fp(1, 1),
		"both":   fp(2, 2),
		"diff":   fp(3, 4),
	})

	ab := Reconcile(a, b, true)
	ba := Reconcile(b, a, true)

	assert.Equal(t, ab.Missing.Sorted(), ba.Extra.Sorted())
	assert.Equal(t, ab.Extra.Sorted(), ba.Missing.Sorted())
	assert.Equal(t, ab.Mismatched.Sorted(), ba.Mismatched.Sorted())
	assert.Equal(t, ab.MatchedCount, ba.MatchedCount)
}

func TestReconcileCountsAddUp(t *testing.T) {
	source := snapshot("/src", map[string]models.FileFingerprint{
		"1": fp(1, 1), "2": fp(1, 2), "3": fp(1, 3), "4": fp(1, 4),
	})
	target := snapshot("/dst", map[string]models.FileFingerprint{
		"1": fp(1, 1), "2": fp(1, 9), "5": fp(1, 5),
	})

	result := Reconcile(source, target, true)

	common := source.Len() - result.Missing.Len()
	assert.Equal(t, common, result.MatchedCount+result.Mismatched.Len())
	assert.Equal(t, target.Len(), common+result.Extra.Len())
}
