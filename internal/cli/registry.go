package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Tool is one entry of the launcher: a stable identifier bound to the
// command that implements it
type Tool struct {
	ID      string
	Summary string
	New     func(globals *GlobalFlags) *cobra.Command
}

// Tools is the static registry of commands exposed by the launcher, in
// display order
var Tools = []Tool{
	{ID: "compare", Summary: "compare two folders and reconcile unpaired files", New: NewCompareCommand},
	{ID: "config", Summary: "show or create the configuration file", New: NewConfigCommand},
	{ID: "version", Summary: "show version information", New: func(*GlobalFlags) *cobra.Command { return NewVersionCommand() }},
}

// LookupTool returns the registered tool with id
func LookupTool(id string) (Tool, bool) {
	for _, t := range Tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}

// NewRootCommand builds the launcher with every registered tool attached
func NewRootCommand() *cobra.Command {
	globals := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "foldermatch",
		Short: "Compare two folders and reconcile their differences",
		Long: `foldermatch scans a source and a target folder, reports files missing
from the target, files only present in the target and, optionally, files whose
content differs. Unpaired files can then be relocated into a subfolder or
deleted after confirmation.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(rootCmd, globals)

	for _, t := range Tools {
		rootCmd.AddCommand(t.New(globals))
	}
	rootCmd.AddCommand(newToolsCommand())

	return rootCmd
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools [TOOL]",
		Short: "List the available tools, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				tool, ok := LookupTool(args[0])
				if !ok {
					return fmt.Errorf("unknown tool %q (run 'foldermatch tools' to list them)", args[0])
				}
				sub := tool.New(&GlobalFlags{})
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n\n%s", tool.ID, tool.Summary, sub.UsageString())
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range Tools {
				fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Summary)
			}
			return tw.Flush()
		},
	}
}
