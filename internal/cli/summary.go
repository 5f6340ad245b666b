package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/config"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/report"
)

var summaryCmd = LeafCommand{
	Use:   "summary",
	Short: "Show progress toward licensure requirements",
	BoolFlags: []BoolFlag{
		{Name: "json", Usage: "print the summary as JSON"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return runSummary(cmd, env, asJSON)
	},
}.Build()

func targets(cfg *config.Config) report.Targets {
	return report.Targets{
		TotalHours:       float64(cfg.Licensure.TotalHoursTarget),
		DirectHours:      float64(cfg.Licensure.DirectHoursTarget),
		MinMonths:        float64(cfg.Licensure.MinMonths),
		MinWeeklyAverage: cfg.Licensure.MinWeeklyAverage,
	}
}

// summarize loads the ledger and measures it against the configured targets.
func summarize(env *appEnv) (report.Summary, *ledger.Ledger, error) {
	start, err := env.cfg.StartDate()
	if err != nil {
		return report.Summary{}, nil, err
	}
	l, err := env.store().Load()
	if err != nil {
		return report.Summary{}, nil, err
	}
	return report.Summarize(l, targets(env.cfg), start, env.today()), l, nil
}

func runSummary(cmd *cobra.Command, env *appEnv, asJSON bool) error {
	s, _, err := summarize(env)
	if err != nil {
		return err
	}
	if asJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	writeSummary(cmd.OutOrStdout(), s)
	return nil
}

func writeSummary(w io.Writer, s report.Summary) {
	p := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format+"\n", a...) }

	p("%s", Bold("Licensure Progress"))
	p("%s", strings.Repeat("═", 50))
	p("")
	p("Total supervised hours: %8.1f / %-6.0f (%5.1f%%)", s.TotalHours.Current, s.TotalHours.Target, s.TotalHours.Percentage)
	p("Direct client hours:    %8.1f / %-6.0f (%5.1f%%)", s.DirectHours.Current, s.DirectHours.Target, s.DirectHours.Percentage)
	p("Months of experience:   %8.0f / %-6.0f (%5.1f%%)", s.Months.Current, s.Months.Target, s.Months.Percentage)
	p("Weekly average:         %8.1f / %-6.1f (%5.1f%%)", s.WeeklyAverage.Current, s.WeeklyAverage.Target, s.WeeklyAverage.Percentage)
	p("")
	p("Weeks logged: %d", s.WeeksLogged)
	if s.FirstWeekStart != nil {
		p("Date range: %s – %s", s.FirstWeekStart.In(time.UTC).Format("Jan 02, 2006"), s.LatestWeekEnd.In(time.UTC).Format("Jan 02, 2006"))
	}
}
