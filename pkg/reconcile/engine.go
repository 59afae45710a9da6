package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/foldermatch/pkg/logging"
	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/output"
	"github.com/sdejongh/foldermatch/pkg/scan"
)

// Request describes one compare run
type Request struct {
	SourceRoot   string
	TargetRoot   string
	CheckContent bool
	Action       models.ReconciliationAction

	// ScanTimeout bounds each scan's wall-clock time. Zero means no limit.
	ScanTimeout time.Duration
}

// Engine orchestrates scan, reconcile, render and apply
type Engine struct {
	scanner  *scan.Scanner
	executor *Executor
	logger   logging.Logger
}

// NewEngine creates a new compare engine
func NewEngine(scanner *scan.Scanner, executor *Executor, logger logging.Logger) *Engine {
	return &Engine{
		scanner:  scanner,
		executor: executor,
		logger:   logging.OrNull(logger),
	}
}

// Run executes a compare run. Fatal errors (bad arguments, unusable roots,
// scan timeouts) are returned as errors. Per-file scan and action failures
// are carried in the report and reflected in its status.
func (e *Engine) Run(ctx context.Context, req Request) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:        uuid.New().String(),
		SourcePath:   req.SourceRoot,
		TargetPath:   req.TargetRoot,
		CheckContent: req.CheckContent,
		StartTime:    time.Now(),
		Status:       models.StatusFailed,
	}
	log := e.logger.WithFields(logging.Fields{"run_id": report.RunID})

	if err := req.Action.Validate(); err != nil {
		return report, err
	}

	// The two scans share no state and run side by side.
	var source, target *scan.Result
	var g errgroup.Group
	g.Go(func() error {
		var err error
		source, err = e.scanWithBudget(ctx, req.SourceRoot, req.ScanTimeout)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = e.scanWithBudget(ctx, req.TargetRoot, req.ScanTimeout)
		return err
	})
	if err := g.Wait(); err != nil {
		e.finish(report)
		return report, err
	}

	report.SourcePath = source.Snapshot.Root()
	report.TargetPath = target.Snapshot.Root()
	report.SourceFiles = source.Snapshot.Len()
	report.TargetFiles = target.Snapshot.Len()
	report.ScanErrors = append(append([]*models.FileError(nil), source.Errors...), target.Errors...)

	result := Reconcile(source.Snapshot, target.Snapshot, req.CheckContent)
	report.Result = result
	report.Rows = output.Render(result, req.CheckContent)

	summary := logging.Fields{
		"missing": result.Missing.Len(),
		"extra":   result.Extra.Len(),
		"matched": result.MatchedCount,
	}
	if req.CheckContent {
		summary["mismatched"] = result.Mismatched.Len()
	} else {
		summary["mismatched"] = "not checked"
	}
	log.Info(ctx, "reconciliation summary", summary)

	if req.Action.Kind != models.ActionNone {
		outcome, err := e.executor.Apply(ctx, req.Action, report.SourcePath, report.TargetPath, result)
		report.Outcome = outcome

		var actionErr *models.ActionError
		if err != nil && !errors.As(err, &actionErr) {
			e.finish(report)
			return report, fmt.Errorf("failed to apply %s: %w", req.Action, err)
		}
	}

	report.Status = runStatus(report)
	e.finish(report)
	log.Info(ctx, "run completed", logging.Fields{
		"status":   string(report.Status),
		"duration": report.Duration.String(),
	})

	return report, nil
}

// scanWithBudget runs a scan under a wall-clock limit. The scan itself is
// not interruptible; on timeout its result is discarded.
func (e *Engine) scanWithBudget(ctx context.Context, root string, budget time.Duration) (*scan.Result, error) {
	if budget <= 0 {
		return e.scanner.Scan(ctx, root)
	}

	type scanOutput struct {
		result *scan.Result
		err    error
	}
	done := make(chan scanOutput, 1)
	go func() {
		r, err := e.scanner.Scan(ctx, root)
		done <- scanOutput{r, err}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.result, out.err
	case <-timer.C:
		e.logger.Error(ctx, "scan timed out", models.ErrScanTimeout, logging.Fields{"root": root, "budget": budget.String()})
		return nil, fmt.Errorf("%s: %w", root, models.ErrScanTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) finish(report *models.RunReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

func runStatus(report *models.RunReport) models.RunStatus {
	if o := report.Outcome; o != nil {
		if o.Aborted {
			return models.StatusAborted
		}
		if len(o.Failures) > 0 || len(o.Vanished) > 0 {
			return models.StatusPartial
		}
	}
	if len(report.ScanErrors) > 0 {
		return models.StatusPartial
	}
	return models.StatusSuccess
}
