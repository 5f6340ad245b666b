package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/ledger"
	"go.uber.org/zap"
)

var addCmd = LeafCommand{
	Use:   "add",
	Short: "Add hours to one category of a week",
	Long: "Add hours to one category of a week. Without --non-interactive a terminal " +
		"menu walks through week, category and amount.",
	StrFlags: []StringFlag{
		{Name: "week", Usage: "week start date, a Tuesday (default: current week)"},
		{Name: "category", Usage: "individual_supervision, group_supervision, direct or indirect"},
	},
	FloatFlags: []FloatFlag{
		{Name: "hours", Usage: "hours to add"},
	},
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
			return runInteractive(cmd, env, addMode)
		}

		week, _ := cmd.Flags().GetString("week")
		category, _ := cmd.Flags().GetString("category")
		hours, _ := cmd.Flags().GetFloat64("hours")
		if category == "" || !cmd.Flags().Changed("hours") {
			return errors.New("--category and --hours are required with --non-interactive")
		}
		return runAdd(cmd, env, week, category, hours)
	},
}.Build()

func runAdd(cmd *cobra.Command, env *appEnv, weekFlag, categoryKey string, amount float64) error {
	start, err := resolveWeek(weekFlag, env.today())
	if err != nil {
		return err
	}
	c, err := ledger.ParseCategory(categoryKey)
	if err != nil {
		return err
	}
	if err := ledger.CheckAmount(amount); err != nil {
		return err
	}

	store := env.store()
	l, err := store.Load()
	if err != nil {
		return err
	}
	if err := l.Accumulate(start, c, amount); err != nil {
		return err
	}
	if err := store.Save(l); err != nil {
		return err
	}
	env.log.Debug("hours added", zap.Stringer("week", start), zap.Stringer("category", c), zap.Float64("hours", amount))

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %.1f %s hours for week of %s\n", amount, c.Key(), start)
	return env.sync(cmd, addMessage(start.String(), c, amount))
}

func addMessage(week string, c ledger.Category, amount float64) string {
	return fmt.Sprintf("Add %s %s hours for week of %s", formatHours(amount), c.Key(), week)
}

func editMessage(week string) string {
	return "Edit hours for week of " + week
}
