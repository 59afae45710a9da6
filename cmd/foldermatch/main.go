package main

import (
	"fmt"
	"os"

	"github.com/sdejongh/foldermatch/internal/cli"
	"github.com/sdejongh/foldermatch/pkg/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		// the run never produced a report
		os.Exit(models.StatusFailed.ExitCode())
	}
}

func run() error {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	return cli.NewRootCommand().Execute()
}
