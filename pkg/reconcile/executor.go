package reconcile

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sdejongh/foldermatch/internal/platform"
	"github.com/sdejongh/foldermatch/pkg/logging"
	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/storage"
)

// ConfirmFunc asks the user a yes/no question and blocks until answered.
// Only an affirmative true lets a delete proceed.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Executor applies a ReconciliationAction to the unpaired files of a result
type Executor struct {
	fs      afero.Fs
	logger  logging.Logger
	confirm ConfirmFunc
}

// NewExecutor creates an executor. A nil confirm declines every delete.
func NewExecutor(fsys afero.Fs, logger logging.Logger, confirm ConfirmFunc) *Executor {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Executor{
		fs:      fsys,
		logger:  logging.OrNull(logger),
		confirm: confirm,
	}
}

// Apply runs action once against result. Missing paths are resolved under
// sourceRoot and extra paths under targetRoot; the snapshots are not used.
//
// Invalid arguments and unusable roots fail before anything is touched.
// Individual files that fail are collected and processing continues; in
// that case the outcome is returned together with a *models.ActionError.
// A declined delete returns an aborted outcome and no error.
func (e *Executor) Apply(ctx context.Context, action models.ReconciliationAction, sourceRoot, targetRoot string, result *models.ReconciliationResult) (*models.ActionOutcome, error) {
	outcome := models.NewActionOutcome(action)

	if err := action.Validate(); err != nil {
		return outcome, err
	}
	if action.Kind == models.ActionRelocate {
		if err := platform.ValidateSubfolder(action.Subfolder); err != nil {
			return outcome, &models.ValidationError{Field: "Subfolder", Message: err.Error()}
		}
	}

	if action.Kind == models.ActionNone {
		e.transition(ctx, outcome, models.StateDone)
		return outcome, nil
	}

	source, err := storage.NewLocal(e.fs, sourceRoot)
	if err != nil {
		return outcome, err
	}
	defer source.Close()

	target, err := storage.NewLocal(e.fs, targetRoot)
	if err != nil {
		return outcome, err
	}
	defer target.Close()

	switch action.Kind {
	case models.ActionRelocate:
		e.transition(ctx, outcome, models.StateApplying)
		if err := e.relocate(ctx, outcome, source, target, result); err != nil {
			return outcome, err
		}

	case models.ActionDelete:
		if result.Unpaired() > 0 {
			e.transition(ctx, outcome, models.StateConfirming)
			confirmed, err := e.askDelete(ctx, source, target, result)
			if err != nil || !confirmed {
				outcome.Aborted = true
				e.transition(ctx, outcome, models.StateIdle)
				e.logger.Warn(ctx, "delete aborted", logging.Fields{"files": result.Unpaired()})
				if err != nil {
					return outcome, fmt.Errorf("confirmation failed: %w", err)
				}
				return outcome, nil
			}
		}
		e.transition(ctx, outcome, models.StateApplying)
		e.deleteAll(ctx, outcome, source, result.Missing)
		e.deleteAll(ctx, outcome, target, result.Extra)
	}

	e.transition(ctx, outcome, models.StateDone)

	if len(outcome.Failures) > 0 {
		return outcome, &models.ActionError{Action: action, Failures: outcome.Failures}
	}
	return outcome, nil
}

func (e *Executor) transition(ctx context.Context, outcome *models.ActionOutcome, to models.ActionState) {
	e.logger.Debug(ctx, "action state", logging.Fields{
		"action": outcome.Action.String(),
		"from":   string(outcome.State),
		"to":     string(to),
	})
	outcome.State = to
}

// askDelete lists every file that would be removed, then asks once
func (e *Executor) askDelete(ctx context.Context, source, target storage.Backend, result *models.ReconciliationResult) (bool, error) {
	if e.confirm == nil {
		return false, nil
	}
	return e.confirm(ctx, deletePrompt(source.Root(), target.Root(), result))
}

func deletePrompt(sourceRoot, targetRoot string, result *models.ReconciliationResult) string {
	var b strings.Builder
	listFiles := func(root string, paths models.PathSet) {
		if paths.Len() == 0 {
			return
		}
		fmt.Fprintf(&b, "From %s:\n", root)
		for _, key := range paths.Sorted() {
			fmt.Fprintf(&b, "  %s\n", platform.FromSnapshotKey(root, key))
		}
	}
	listFiles(sourceRoot, result.Missing)
	listFiles(targetRoot, result.Extra)

	fmt.Fprintf(&b,
		"Permanently delete %d file(s) from %s and %d file(s) from %s? This cannot be undone. [y/N]: ",
		result.Missing.Len(), sourceRoot, result.Extra.Len(), targetRoot,
	)
	return b.String()
}

// relocate moves missing files into <source>/<sub>/missing_in_target and
// extra files into <target>/<sub>/extra_in_target, flattening directories
func (e *Executor) relocate(ctx context.Context, outcome *models.ActionOutcome, source, target storage.Backend, result *models.ReconciliationResult) error {
	sub := filepath.ToSlash(outcome.Action.Subfolder)
	missingDir := path.Join(sub, models.MissingInTargetDir)
	extraDir := path.Join(sub, models.ExtraInTargetDir)

	if err := source.MkdirAll(ctx, missingDir); err != nil {
		return &models.FilesystemError{Path: platform.FromSnapshotKey(source.Root(), missingDir), Err: err}
	}
	if err := target.MkdirAll(ctx, extraDir); err != nil {
		return &models.FilesystemError{Path: platform.FromSnapshotKey(target.Root(), extraDir), Err: err}
	}

	e.moveAll(ctx, outcome, source, result.Missing, missingDir)
	e.moveAll(ctx, outcome, target, result.Extra, extraDir)
	return nil
}

func (e *Executor) moveAll(ctx context.Context, outcome *models.ActionOutcome, backend storage.Backend, paths models.PathSet, destDir string) {
	for _, key := range paths.Sorted() {
		from := platform.FromSnapshotKey(backend.Root(), key)
		toKey := path.Join(destDir, path.Base(key))
		to := platform.FromSnapshotKey(backend.Root(), toKey)

		// A file already sitting in the destination folder stays put.
		if key == toKey {
			outcome.Skipped = append(outcome.Skipped, from)
			e.logger.Info(ctx, "file already relocated", logging.Fields{"path": from})
			continue
		}

		if !e.stillExists(ctx, outcome, backend, key, from, "move") {
			continue
		}

		replaced, err := backend.Move(ctx, key, toKey)
		if err != nil {
			e.fail(ctx, outcome, from, "move", err)
			continue
		}

		outcome.Moved = append(outcome.Moved, models.Relocation{From: from, To: to, Overwrote: replaced})
		fields := logging.Fields{"from": from, "to": to}
		if replaced {
			e.logger.Warn(ctx, "relocation overwrote existing file", fields)
		}
		e.logger.Info(ctx, "file moved", fields)
	}
}

func (e *Executor) deleteAll(ctx context.Context, outcome *models.ActionOutcome, backend storage.Backend, paths models.PathSet) {
	for _, key := range paths.Sorted() {
		abs := platform.FromSnapshotKey(backend.Root(), key)

		if !e.stillExists(ctx, outcome, backend, key, abs, "delete") {
			continue
		}

		if err := backend.Delete(ctx, key); err != nil {
			e.fail(ctx, outcome, abs, "delete", err)
			continue
		}

		outcome.Deleted = append(outcome.Deleted, abs)
		e.logger.Info(ctx, "file deleted", logging.Fields{"path": abs})
	}
}

// stillExists checks a file right before acting on it. Vanished files are
// recorded on the outcome so they are reported rather than ignored.
func (e *Executor) stillExists(ctx context.Context, outcome *models.ActionOutcome, backend storage.Backend, key, abs, op string) bool {
	ok, err := backend.Exists(ctx, key)
	if err != nil {
		e.fail(ctx, outcome, abs, op, err)
		return false
	}
	if !ok {
		outcome.Vanished = append(outcome.Vanished, abs)
		e.logger.Warn(ctx, "file vanished before "+op, logging.Fields{"path": abs})
		return false
	}
	return true
}

func (e *Executor) fail(ctx context.Context, outcome *models.ActionOutcome, abs, op string, err error) {
	fe := &models.FileError{Path: abs, Op: op, Err: err}
	outcome.Failures = append(outcome.Failures, fe)
	e.logger.Error(ctx, "file "+op+" failed", err, logging.Fields{"path": abs})
}
