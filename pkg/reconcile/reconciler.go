// Package reconcile classifies the differences between two directory
// snapshots and optionally acts on the unpaired files.
package reconcile

import (
	"github.com/sdejongh/foldermatch/pkg/models"
)

// Reconcile compares source against target. Paths only in source are
// missing, paths only in target are extra. When checkContent is set, common
// paths whose fingerprints differ are mismatched; otherwise every common
// path counts as matched and fingerprints are not looked at.
func Reconcile(source, target *models.DirectorySnapshot, checkContent bool) *models.ReconciliationResult {
	result := models.NewReconciliationResult()

	common := 0
	for _, path := range source.Paths() {
		srcFP, _ := source.Get(path)

		dstFP, ok := target.Get(path)
		if !ok {
			result.Missing.Add(path)
			continue
		}

		common++
		if checkContent && !srcFP.Equal(dstFP) {
			result.Mismatched.Add(path)
		}
	}

	for _, path := range target.Paths() {
		if !source.Has(path) {
			result.Extra.Add(path)
		}
	}

	result.MatchedCount = common - result.Mismatched.Len()
	return result
}
