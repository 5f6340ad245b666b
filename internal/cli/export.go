package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openFile launches the platform viewer for path. The viewer is reaped in
// the background.
var openFile = func(path string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	return startDetached(exec.Command(name, path))
}

func startDetached(c *exec.Cmd) error {
	if err := c.Start(); err != nil {
		return err
	}
	go func() { _ = c.Wait() }()
	return nil
}

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Write a PDF progress report",
	StrFlags: []StringFlag{
		{Name: "output", Usage: "output path (default <data>/exports/hours-report-YYYY-MM-DD.pdf)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "open", Usage: "open the PDF once written"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		open, _ := cmd.Flags().GetBool("open")
		return runExport(cmd, env, output, open)
	},
}.Build()

func defaultExportPath(env *appEnv) string {
	return filepath.Join(env.cfg.DataDir(), "exports", fmt.Sprintf("hours-report-%s.pdf", env.today()))
}

func runExport(cmd *cobra.Command, env *appEnv, output string, open bool) error {
	s, l, err := summarize(env)
	if err != nil {
		return err
	}

	if output == "" {
		output = defaultExportPath(env)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	data := exportData{Generated: env.today(), Summary: s, Weeks: l.Weeks}
	if err := renderReportPDF(data, output); err != nil {
		return err
	}
	env.log.Debug("report written", zap.String("path", output), zap.Int("weeks", len(l.Weeks)))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", Primary(output))

	if open {
		if err := openFile(output); err != nil {
			return fmt.Errorf("opening %s: %w", output, err)
		}
	}
	return nil
}
