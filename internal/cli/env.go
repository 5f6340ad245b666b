package cli

import (
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"github.com/wwlorey/hours/internal/calendar"
	"github.com/wwlorey/hours/internal/config"
	"github.com/wwlorey/hours/internal/gitsync"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/logging"
	"go.uber.org/zap"
)

// gitRepo is the part of gitsync.Repo the commands use.
type gitRepo interface {
	Init(remoteURL string) error
	Sync(message string) error
}

type repoFactory func(cfg *config.Config, warn func(string)) gitRepo

func gitsyncRepo(log *zap.Logger) repoFactory {
	return func(cfg *config.Config, warn func(string)) gitRepo {
		return gitsync.New(cfg.DataDir(), cfg.Git.Remote, cfg.Git.AutoPush, log, warn)
	}
}

// appEnv is everything a command needs from the outside world, resolved once
// per invocation.
type appEnv struct {
	configPath string
	cfg        *config.Config
	noGit      bool
	log        *zap.Logger
	newRepo    repoFactory
	nowFn      func() time.Time
}

// newEnv resolves flags and environment without reading the config file.
func newEnv(cmd *cobra.Command) (*appEnv, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	noGit, _ := cmd.Flags().GetBool("no-git")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log := logging.New(verbose, cmd.ErrOrStderr())
	return &appEnv{
		configPath: config.Path(dir),
		noGit:      noGit || config.NoGitFromEnv(),
		log:        log,
		newRepo:    gitsyncRepo(log),
		nowFn:      time.Now,
	}, nil
}

// loadEnv is newEnv plus the config file.
func loadEnv(cmd *cobra.Command) (*appEnv, error) {
	env, err := newEnv(cmd)
	if err != nil {
		return nil, err
	}
	if env.cfg, err = config.Load(env.configPath); err != nil {
		return nil, err
	}
	env.log.Debug("config loaded", zap.String("path", env.configPath), zap.String("data", env.cfg.DataDir()))
	return env, nil
}

func (e *appEnv) store() *ledger.Store {
	return ledger.NewStore(e.cfg.DataFile(), e.log)
}

func (e *appEnv) today() civil.Date {
	return calendar.Today(e.nowFn())
}

// repo returns nil when git is disabled.
func (e *appEnv) repo(warn func(string)) gitRepo {
	if e.noGit {
		return nil
	}
	return e.newRepo(e.cfg, warn)
}

// sync commits the saved ledger. The ledger is already on disk, so a failure
// here is reported without touching it.
func (e *appEnv) sync(cmd *cobra.Command, message string) error {
	repo := e.repo(warnTo(cmd.ErrOrStderr()))
	if repo == nil {
		return nil
	}
	if err := repo.Sync(message); err != nil {
		return fmt.Errorf("git sync failed (data saved locally): %w", err)
	}
	return nil
}

func warnTo(w io.Writer) func(string) {
	return func(msg string) {
		_, _ = fmt.Fprintln(w, Warning("warning: "+msg))
	}
}

// resolveWeek parses a --week value, defaulting to the week containing today.
func resolveWeek(flag string, today civil.Date) (civil.Date, error) {
	if flag == "" {
		return calendar.WeekStartOf(today), nil
	}
	d, err := calendar.ParseDate(flag)
	if err != nil {
		return civil.Date{}, err
	}
	if !calendar.IsWeekStart(d) {
		return civil.Date{}, fmt.Errorf("%w, got %s", ledger.ErrInvalidWeekStart, d)
	}
	return d, nil
}

// formatHours renders an amount the way it appears in commit messages:
// whole numbers without a decimal point.
func formatHours(h float64) string {
	return fmt.Sprintf("%g", h)
}
