package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"

	"github.com/sdejongh/foldermatch/pkg/config"
	"github.com/sdejongh/foldermatch/pkg/logging"
	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/output"
	"github.com/sdejongh/foldermatch/pkg/reconcile"
	"github.com/sdejongh/foldermatch/pkg/scan"
)

// actionMode is the value of the --action flag
type actionMode enumflag.Flag

const (
	actionNone actionMode = iota
	actionRelocate
	actionDelete
)

var actionModeIds = map[actionMode][]string{
	actionNone:     {string(models.ActionNone)},
	actionRelocate: {string(models.ActionRelocate)},
	actionDelete:   {string(models.ActionDelete)},
}

func (m actionMode) kind() models.ActionKind {
	return models.ActionKind(actionModeIds[m][0])
}

// Replaced in tests.
var (
	exit          = os.Exit
	isInteractive = stdinIsTerminal
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	CheckContent bool
	Action       actionMode
	RelocateTo   string
	Yes          bool
	Output       string
	Report       string
	ReportFormat string
	Workers      int
	Timeout      time.Duration
	Exclude      []string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// NewCompareCommand creates the compare command
func NewCompareCommand(globals *GlobalFlags) *cobra.Command {
	flags := &CompareFlags{}

	cmd := &cobra.Command{
		Use:   "compare SOURCE TARGET",
		Short: "Compare two folders and reconcile unpaired files",
		Long: `Compare SOURCE against TARGET by relative path and report files missing
from TARGET, files only in TARGET and, with --check-content, files whose content
differs.

With --action relocate, unpaired files are moved into
SOURCE/<subfolder>/missing_in_target and TARGET/<subfolder>/extra_in_target.
With --action delete, unpaired files are removed after confirmation.

Exit codes: 0 success, 1 partial (files skipped or failed), 2 failed, 3 aborted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runCompare(cmd, globals, flags, args[0], args[1])
			if err != nil {
				return err
			}
			if code := report.Status.ExitCode(); code != 0 {
				exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&flags.CheckContent, "check-content", "c", false, "also compare file content fingerprints")
	cmd.Flags().Var(
		enumflag.New(&flags.Action, "action", actionModeIds, enumflag.EnumCaseInsensitive),
		"action",
		"what to do with unpaired files: none, relocate, delete")
	cmd.Flags().StringVar(&flags.RelocateTo, "relocate-to", "", "subfolder for relocated files (implies --action relocate)")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "delete without asking for confirmation")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "human", "output format: human, json")
	cmd.Flags().StringVar(&flags.Report, "report", "", "also write the report to a file")
	cmd.Flags().StringVar(&flags.ReportFormat, "report-format", "human", "report file format: human, json")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "p", scan.DefaultWorkers, "number of files fingerprinted in parallel")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "wall-clock budget for each folder scan (0 = none)")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns to exclude")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "console", "log format: console, json")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, globals *GlobalFlags, flags *CompareFlags, source, target string) (*models.RunReport, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fsys := afero.NewOsFs()

	// Load configuration
	cfg, err := config.Load(fsys, globals.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd.Flags(), globals, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	action := cfg.Compare.ReconciliationAction()
	sourceAbs, targetAbs, err := validateRoots(fsys, source, target, action.Kind)
	if err != nil {
		return nil, err
	}

	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	confirm := NewPromptConfirm(cmd.InOrStdin(), cmd.ErrOrStderr(), isInteractive)
	if flags.Yes {
		confirm = assumeYes
	}

	scanner := scan.NewScanner(fsys, logger, scan.Options{
		Workers: cfg.Performance.MaxWorkers,
		Exclude: cfg.Exclude,
	})
	executor := reconcile.NewExecutor(fsys, logger, confirm)
	engine := reconcile.NewEngine(scanner, executor, logger)

	report, err := engine.Run(ctx, reconcile.Request{
		SourceRoot:   sourceAbs,
		TargetRoot:   targetAbs,
		CheckContent: cfg.Compare.CheckContent,
		Action:       action,
		ScanTimeout:  cfg.Performance.ScanTimeout,
	})
	if err != nil {
		return report, fmt.Errorf("comparison failed: %w", err)
	}

	if !cfg.Output.Quiet {
		formatter, err := output.NewFormatter(cfg.Output.Format)
		if err != nil {
			return report, err
		}
		if err := formatter.Write(cmd.OutOrStdout(), report); err != nil {
			return report, fmt.Errorf("failed to write output: %w", err)
		}
	}

	if flags.Report != "" {
		if err := output.WriteReportFile(report, flags.Report, flags.ReportFormat); err != nil {
			return report, fmt.Errorf("failed to write report: %w", err)
		}
	}

	return report, nil
}

// applyFlagsToConfig overrides config values with the flags set on the command line
func applyFlagsToConfig(fs *pflag.FlagSet, globals *GlobalFlags, flags *CompareFlags, cfg *config.Config) {
	if fs.Changed("check-content") {
		cfg.Compare.CheckContent = flags.CheckContent
	}

	if fs.Changed("action") {
		cfg.Compare.Action = flags.Action.kind()
	}
	if fs.Changed("relocate-to") {
		cfg.Compare.RelocateTo = flags.RelocateTo
		if !fs.Changed("action") {
			cfg.Compare.Action = models.ActionRelocate
		}
	}

	if fs.Changed("workers") {
		cfg.Performance.MaxWorkers = flags.Workers
	}
	if fs.Changed("timeout") {
		cfg.Performance.ScanTimeout = flags.Timeout
	}

	// Exclude patterns
	if len(flags.Exclude) > 0 {
		cfg.Exclude = flags.Exclude
	}

	if fs.Changed("output") {
		cfg.Output.Format = flags.Output
	}
	if globals.Quiet {
		cfg.Output.Quiet = true
	}

	if fs.Changed("log-file") {
		cfg.Logging.Enabled = flags.LogFile != ""
		cfg.Logging.File = flags.LogFile
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = flags.LogFormat
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = flags.LogLevel
	}

	// Verbose logs everything to stderr unless told otherwise
	if globals.Verbose {
		cfg.Logging.Enabled = true
		if !fs.Changed("log-level") {
			cfg.Logging.Level = "debug"
		}
	}
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NewNullLogger(), nil
	}

	logger, err := logging.NewZapLogger(logging.Config{
		Format: logging.Format(cfg.Format),
		Level:  logging.ParseLevel(cfg.Level),
		Path:   cfg.File,
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}
