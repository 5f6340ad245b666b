package cli

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/calendar"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/nav"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type flowMode int

const (
	addMode flowMode = iota
	editMode
)

// runSession is swapped out in tests; the real one needs a terminal.
var runSession = func(ctx context.Context, flow nav.Flow, opts ...nav.Option) (nav.Result, error) {
	return nav.Run(ctx, flow, opts...)
}

// ledgerFlow feeds the navigation session from a loaded ledger. Every commit
// is saved and synced before the session moves on.
type ledgerFlow struct {
	mode   flowMode
	store  *ledger.Store
	ledger *ledger.Ledger
	weeks  []calendar.Week
	today  civil.Date
	repo   gitRepo
	log    *zap.Logger

	warnings []string
	syncErr  error
}

func newLedgerFlow(env *appEnv, store *ledger.Store, l *ledger.Ledger, mode flowMode, start civil.Date) *ledgerFlow {
	f := &ledgerFlow{
		mode:   mode,
		store:  store,
		ledger: l,
		today:  env.today(),
		log:    env.log,
	}
	f.weeks = selectableWeeks(l, start, f.today)
	// warnings are held until the terminal is handed back
	f.repo = env.repo(func(msg string) { f.warnings = append(f.warnings, msg) })
	return f
}

// selectableWeeks is every week from start through today plus any recorded
// week outside that range, newest first.
func selectableWeeks(l *ledger.Ledger, start, today civil.Date) []calendar.Week {
	weeks := calendar.EnumerateWeeks(start, today)
	for _, r := range l.Weeks {
		if !slices.ContainsFunc(weeks, func(w calendar.Week) bool { return w.Start == r.Start }) {
			weeks = append(weeks, r.Week())
		}
	}
	slices.SortFunc(weeks, func(a, b calendar.Week) int {
		switch {
		case a.Start.After(b.Start):
			return -1
		case a.Start.Before(b.Start):
			return 1
		}
		return 0
	})
	return weeks
}

func (f *ledgerFlow) record(week int) ledger.WeekRecord {
	start := f.weeks[week].Start
	if r, ok := f.ledger.Find(start); ok {
		return r
	}
	return ledger.NewWeekRecord(start)
}

func (f *ledgerFlow) Weeks() ([]string, int) {
	items := make([]string, len(f.weeks))
	initial := 0
	for i, w := range f.weeks {
		marker := ""
		if w.Contains(f.today) {
			marker = " (current)"
			initial = i
		}
		items[i] = fmt.Sprintf("%s%s    %.1f hrs", w.Label(), marker, f.record(i).Total())
	}
	return items, initial
}

func (f *ledgerFlow) Categories(week int) []string {
	r := f.record(week)
	items := make([]string, len(ledger.Categories))
	for i, c := range ledger.Categories {
		items[i] = fmt.Sprintf("%-22s %6.1f", c.Label(), r.Get(c))
	}
	return items
}

func (f *ledgerFlow) Value(week, category int) (string, *float64) {
	c := ledger.Categories[category]
	if f.mode == addMode {
		return fmt.Sprintf("Hours to add (%s)", c.Label()), nil
	}
	current := f.record(week).Get(c)
	return c.Label(), &current
}

func (f *ledgerFlow) Commit(week, category int, amount float64) (string, error) {
	start := f.weeks[week].Start
	c := ledger.Categories[category]

	var (
		err     error
		flash   string
		message string
	)
	switch f.mode {
	case addMode:
		err = f.ledger.Accumulate(start, c, amount)
		flash = fmt.Sprintf("Added %.1f %s hours", amount, c.Label())
		message = addMessage(start.String(), c, amount)
	default:
		err = f.ledger.Overwrite(start, c, amount)
		flash = fmt.Sprintf("%s set to %.1f hours", c.Label(), amount)
		message = editMessage(start.String())
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", nav.ErrRejected, err)
	}
	if err := f.store.Save(f.ledger); err != nil {
		return "", err
	}
	f.log.Debug("interactive commit", zap.Stringer("week", start), zap.Stringer("category", c), zap.Float64("hours", amount))

	if f.repo != nil {
		if err := f.repo.Sync(message); err != nil {
			f.syncErr = multierr.Append(f.syncErr, err)
		}
	}
	return flash, nil
}

// runInteractive runs the menu session for add or edit.
func runInteractive(cmd *cobra.Command, env *appEnv, mode flowMode) error {
	if !isTerminal(cmd) {
		return errNeedsTerminal
	}
	start, err := env.cfg.StartDate()
	if err != nil {
		return err
	}
	store := env.store()
	l, err := store.Load()
	if err != nil {
		return err
	}

	flow := newLedgerFlow(env, store, l, mode, start)
	res, err := runSession(cmd.Context(), flow,
		nav.WithInput(cmd.InOrStdin()),
		nav.WithOutput(cmd.OutOrStdout()),
	)

	warn := warnTo(cmd.ErrOrStderr())
	for _, w := range flow.warnings {
		warn(w)
	}
	if err != nil {
		return err
	}
	if res.Committed > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d change(s)\n", res.Committed)
	}
	if flow.syncErr != nil {
		return fmt.Errorf("git sync failed (data saved locally): %w", flow.syncErr)
	}
	return nil
}
