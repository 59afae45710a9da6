package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/sdejongh/foldermatch/pkg/reconcile"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin
// is not a terminal
var ErrNotInteractive = errors.New("confirmation requires an interactive terminal (use --yes to skip it)")

// stdinIsTerminal reports whether os.Stdin is attached to a terminal
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// NewPromptConfirm asks on out and reads the answer from in. Only "y" or
// "yes" confirm. When interactive reports false nothing is read and
// ErrNotInteractive is returned.
func NewPromptConfirm(in io.Reader, out io.Writer, interactive func() bool) reconcile.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, prompt string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if interactive != nil && !interactive() {
			return false, ErrNotInteractive
		}

		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// assumeYes confirms without asking
func assumeYes(context.Context, string) (bool, error) {
	return true, nil
}
