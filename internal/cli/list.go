package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/report"
)

const emptyLedgerMessage = "No hours logged yet. Use `hours add` to start tracking."

var listCmd = LeafCommand{
	Use:   "list",
	Short: "Show recorded weeks with per-category hours",
	BoolFlags: []BoolFlag{
		{Name: "json", Usage: "print records as JSON"},
	},
	IntFlags: []IntFlag{
		{Name: "last", Usage: "show only the most recent N weeks"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		last, _ := cmd.Flags().GetInt("last")
		if last < 0 {
			return fmt.Errorf("--last must be >= 0, got %d", last)
		}
		return runList(cmd, env, asJSON, last)
	},
}.Build()

func runList(cmd *cobra.Command, env *appEnv, asJSON bool, last int) error {
	l, err := env.store().Load()
	if err != nil {
		return err
	}
	weeks := report.Last(l.Weeks, last)
	out := cmd.OutOrStdout()

	if asJSON {
		data, err := json.MarshalIndent(report.Rows(weeks), "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	if len(weeks) == 0 {
		_, _ = fmt.Fprintln(out, emptyLedgerMessage)
		return nil
	}
	_, _ = fmt.Fprintln(out, renderWeekTable(weeks))
	return nil
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func weekTableRow(label string, w ledger.WeekRecord) []string {
	row := []string{label}
	for _, c := range ledger.Categories {
		row = append(row, fmt.Sprintf("%.1f", w.Get(c)))
	}
	return append(row, fmt.Sprintf("%.1f", w.Total()))
}

// renderWeekTable draws one row per week and a closing TOTALS row.
func renderWeekTable(weeks []ledger.WeekRecord) string {
	headers := []string{"Week"}
	for _, c := range ledger.Categories {
		headers = append(headers, c.Short())
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(weeks)+1)
	for _, w := range weeks {
		rows = append(rows, weekTableRow(w.Week().Label(), w))
	}
	rows = append(rows, weekTableRow("TOTALS", report.Sum(weeks)))
	totalsRow := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch row {
			case table.HeaderRow:
				s = tableHeaderStyle
			case totalsRow:
				s = tableCellStyle.Bold(true)
			default:
				s = tableCellStyle
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.String()
}
