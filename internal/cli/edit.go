package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/ledger"
	"go.uber.org/zap"
)

// categoryFlags declares one float flag per category, named by Category.Flag.
func categoryFlags() []FloatFlag {
	flags := make([]FloatFlag, len(ledger.Categories))
	for i, c := range ledger.Categories {
		flags[i] = FloatFlag{Name: c.Flag(), Usage: "set " + c.Label() + " hours"}
	}
	return flags
}

var editCmd = LeafCommand{
	Use:   "edit",
	Short: "Overwrite the hours recorded for a week",
	StrFlags: []StringFlag{
		{Name: "week", Usage: "week start date, a Tuesday (default: current week)"},
	},
	FloatFlags: categoryFlags(),
	BoolFlags: []BoolFlag{
		{Name: "non-interactive", Usage: "take every value from flags"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
		if !nonInteractive {
			return runInteractive(cmd, env, editMode)
		}

		week, _ := cmd.Flags().GetString("week")
		values := make(map[ledger.Category]float64)
		for _, c := range ledger.Categories {
			if cmd.Flags().Changed(c.Flag()) {
				values[c], _ = cmd.Flags().GetFloat64(c.Flag())
			}
		}
		return runEdit(cmd, env, week, values)
	},
}.Build()

func runEdit(cmd *cobra.Command, env *appEnv, weekFlag string, values map[ledger.Category]float64) error {
	if len(values) == 0 {
		names := make([]string, len(ledger.Categories))
		for i, c := range ledger.Categories {
			names[i] = "--" + c.Flag()
		}
		return fmt.Errorf("at least one of %s is required with --non-interactive", strings.Join(names, ", "))
	}

	start, err := resolveWeek(weekFlag, env.today())
	if err != nil {
		return err
	}
	// all or nothing
	for _, v := range values {
		if err := ledger.CheckAmount(v); err != nil {
			return err
		}
	}

	store := env.store()
	l, err := store.Load()
	if err != nil {
		return err
	}
	for _, c := range ledger.Categories {
		v, ok := values[c]
		if !ok {
			continue
		}
		if err := l.Overwrite(start, c, v); err != nil {
			return err
		}
		env.log.Debug("hours set", zap.Stringer("week", start), zap.Stringer("category", c), zap.Float64("hours", v))
	}
	if err := store.Save(l); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Edited hours for week of %s\n", start)
	return env.sync(cmd, editMessage(start.String()))
}
