package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/calendar"
	"github.com/wwlorey/hours/internal/config"
	"github.com/wwlorey/hours/internal/ledger"
	"go.uber.org/zap"
)

const (
	defaultDataDir = "~/.hours"

	promptDataDir   = "Data directory"
	promptStartDate = "Licensure start date (a Tuesday, YYYY-MM-DD)"
	promptRemote    = "Git remote URL (leave empty to keep data local)"
)

type initOptions struct {
	dataDir        string
	remote         string
	startDate      string
	nonInteractive bool
}

var initCmd = LeafCommand{
	Use:   "init",
	Short: "Create the configuration, data directory and git repository",
	StrFlags: []StringFlag{
		{Name: "data-dir", Usage: "directory holding hours.json (default " + defaultDataDir + ")"},
		{Name: "remote", Usage: "git remote URL to push to"},
		{Name: "start-date", Usage: "licensure start date, a Tuesday (YYYY-MM-DD)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "non-interactive", Usage: "fail instead of prompting for missing values"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(cmd)
		if err != nil {
			return err
		}

		var opts initOptions
		opts.dataDir, _ = cmd.Flags().GetString("data-dir")
		opts.remote, _ = cmd.Flags().GetString("remote")
		opts.startDate, _ = cmd.Flags().GetString("start-date")
		opts.nonInteractive, _ = cmd.Flags().GetBool("non-interactive")

		return runInit(cmd, env, opts, NewPromptKit(validateInitAnswer))
	},
}.Build()

func validateInitAnswer(prompt, answer string) error {
	if prompt == promptStartDate {
		_, err := parseStartDate(answer)
		return err
	}
	return nil
}

func parseStartDate(s string) (civil.Date, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return civil.Date{}, err
	}
	if !calendar.IsWeekStart(d) {
		return civil.Date{}, fmt.Errorf("%w, got %s (%s)", ledger.ErrInvalidWeekStart, d, d.In(time.UTC).Weekday())
	}
	return d, nil
}

func runInit(cmd *cobra.Command, env *appEnv, opts initOptions, kit PromptKit) error {
	out := cmd.OutOrStdout()

	if _, err := os.Stat(env.configPath); err == nil {
		if opts.nonInteractive {
			return fmt.Errorf("configuration already exists at %s", env.configPath)
		}
		ok, err := kit.Confirm(fmt.Sprintf("Configuration already exists at %s. Overwrite?", env.configPath))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "init cancelled")
			return nil
		}
	}

	if err := collectInitOptions(env, &opts, kit); err != nil {
		return err
	}
	start, err := parseStartDate(opts.startDate)
	if err != nil {
		return err
	}

	cfg := config.Default(opts.dataDir, opts.remote, start)
	if err := cfg.Validate(); err != nil {
		return err
	}
	env.cfg = cfg

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store := env.store()
	if store.Exists() {
		// keep what is there, but only if it is readable
		if _, err := store.Load(); err != nil {
			return err
		}
		env.log.Debug("keeping existing ledger", zap.String("path", store.Path))
	} else if err := store.Save(ledger.New()); err != nil {
		return err
	}

	if err := cfg.Save(env.configPath); err != nil {
		return err
	}

	if repo := env.repo(warnTo(cmd.ErrOrStderr())); repo != nil {
		if err := repo.Init(opts.remote); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(out, "hours initialized: config %s, data %s\n",
		Primary(env.configPath), Primary(cfg.DataDir()))
	return nil
}

func collectInitOptions(env *appEnv, opts *initOptions, kit PromptKit) error {
	if opts.nonInteractive {
		if opts.dataDir == "" || opts.startDate == "" {
			return errors.New("--data-dir and --start-date are required with --non-interactive")
		}
		return nil
	}

	var err error
	if opts.dataDir == "" {
		if opts.dataDir, err = kit.Prompt(promptDataDir, defaultDataDir); err != nil {
			return err
		}
	}
	if opts.startDate == "" {
		def := calendar.WeekStartOf(env.today()).String()
		if opts.startDate, err = kit.Prompt(promptStartDate, def); err != nil {
			return err
		}
	}
	if opts.remote == "" {
		if opts.remote, err = kit.Prompt(promptRemote, ""); err != nil {
			return err
		}
	}
	return nil
}
