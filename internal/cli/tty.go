package cli

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errNeedsTerminal = errors.New("interactive mode requires a terminal; use --non-interactive")

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isTerminal reports whether both ends of cmd are attached to a terminal.
var isTerminal = func(cmd *cobra.Command) bool {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !isTTY(in) {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTTY(out)
}
