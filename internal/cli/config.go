package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sdejongh/foldermatch/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(globals *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the foldermatch configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand(globals))
	cmd.AddCommand(newConfigInitCommand(globals))

	return cmd
}

func newConfigShowCommand(globals *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(afero.NewOsFs(), globals.ConfigFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Check Content: %t\n", cfg.Compare.CheckContent)
			fmt.Fprintf(out, "Action: %s\n", cfg.Compare.ReconciliationAction())
			fmt.Fprintf(out, "Max Workers: %d\n", cfg.Performance.MaxWorkers)
			if cfg.Performance.ScanTimeout > 0 {
				fmt.Fprintf(out, "Scan Timeout: %s\n", cfg.Performance.ScanTimeout)
			} else {
				fmt.Fprintf(out, "Scan Timeout: none\n")
			}
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Logging: %t (%s, %s)\n", cfg.Logging.Enabled, cfg.Logging.Format, cfg.Logging.Level)
			if len(cfg.Exclude) > 0 {
				fmt.Fprintf(out, "Exclude: %s\n", strings.Join(cfg.Exclude, ", "))
			}

			return nil
		},
	}
}

func newConfigInitCommand(globals *GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()

			path := globals.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if !force {
				if ok, _ := afero.Exists(fsys, path); ok {
					return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
				}
			}

			if err := config.SaveToFile(fsys, config.Default(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}
