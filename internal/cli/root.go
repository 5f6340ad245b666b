package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "hours",
	Short:         "Track weekly supervised clinical hours toward licensure",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetHelpFunc(styledHelp)
	rootCmd.PersistentFlags().Bool("no-git", false, "skip committing and pushing the data directory")
	rootCmd.PersistentFlags().Bool("verbose", false, "write debug logs to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// Root returns the command tree, for documentation tooling.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the command line and reports a failure on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), Error("error: "+err.Error()))
	}
	return err
}
