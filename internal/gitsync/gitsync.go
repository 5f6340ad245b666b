// Package gitsync commits and pushes the data directory with the git binary.
package gitsync

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wwlorey/hours/internal/ledger"
	"go.uber.org/zap"
)

// Ignore is the .gitignore written into the data directory.
const Ignore = "*.tmp\nexports/\n"

// InitMessage is the first commit's message.
const InitMessage = "Initialize hours tracking"

var (
	ErrNotRepository = errors.New("data directory is not a git repository. Run 'hours init' to set up")
	ErrNoGit         = errors.New("git is not installed. Install git and try again")
)

// RunFunc runs git with args inside dir.
type RunFunc func(dir string, args ...string) (stdout, stderr string, err error)

// ExecRun runs the real git binary.
func ExecRun(dir string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// HasGit reports whether a git binary is on PATH.
func HasGit() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Repo is the data directory under version control.
type Repo struct {
	Dir      string
	Remote   string
	AutoPush bool

	Run    RunFunc
	HasGit func() bool
	// Warn receives problems that do not fail the command.
	Warn func(msg string)
	Log  *zap.Logger
}

// New returns a Repo that shells out to git.
func New(dir, remote string, autoPush bool, log *zap.Logger, warn func(string)) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	if warn == nil {
		warn = func(string) {}
	}
	return &Repo{
		Dir:      dir,
		Remote:   remote,
		AutoPush: autoPush,
		Run:      ExecRun,
		HasGit:   HasGit,
		Warn:     warn,
		Log:      log,
	}
}

func (r *Repo) git(args ...string) (string, string, error) {
	r.Log.Debug("git", zap.String("dir", r.Dir), zap.Strings("args", args))
	return r.Run(r.Dir, args...)
}

func (r *Repo) gitChecked(args ...string) error {
	_, stderr, err := r.git(args...)
	if err != nil {
		return fmt.Errorf("git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr))
	}
	return nil
}

// IsRepo reports whether Dir is inside a git work tree.
func (r *Repo) IsRepo() bool {
	_, _, err := r.git("rev-parse", "--git-dir")
	return err == nil
}

// Init prepares Dir as a repository, adds remoteURL under Remote when given,
// writes the .gitignore and makes the initial commit.
func (r *Repo) Init(remoteURL string) error {
	if !r.HasGit() {
		return ErrNoGit
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", r.Dir, err)
	}

	if !r.IsRepo() {
		if err := r.gitChecked("init"); err != nil {
			return err
		}
	}

	if remoteURL != "" {
		if _, _, err := r.git("remote", "get-url", r.Remote); err != nil {
			if err := r.gitChecked("remote", "add", r.Remote, remoteURL); err != nil {
				return err
			}
		}
	}

	if err := os.WriteFile(filepath.Join(r.Dir, ".gitignore"), []byte(Ignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := r.Commit(InitMessage); err != nil {
		return err
	}
	if r.AutoPush {
		r.Push()
	}
	return nil
}

// Commit stages the ledger and commits it. An empty commit is not an error.
func (r *Repo) Commit(message string) error {
	if !r.IsRepo() {
		return ErrNotRepository
	}

	if err := r.gitChecked("add", ledger.FileName); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(r.Dir, ".gitignore")); err == nil {
		_, _, _ = r.git("add", ".gitignore")
	}

	stdout, stderr, err := r.git("commit", "-m", message)
	if err != nil {
		if strings.Contains(stdout, "nothing to commit") || strings.Contains(stderr, "nothing to commit") {
			return nil
		}
		return fmt.Errorf("git commit failed: %s", strings.TrimSpace(stderr))
	}
	return nil
}

func (r *Repo) currentBranch() string {
	stdout, _, err := r.git("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil || strings.TrimSpace(stdout) == "" {
		return "main"
	}
	return strings.TrimSpace(stdout)
}

// Push pushes the current branch. Failures only warn since the data is
// already saved locally.
func (r *Repo) Push() {
	branch := r.currentBranch()
	if _, stderr, err := r.git("push", "-u", r.Remote, branch); err != nil {
		r.Warn(fmt.Sprintf("git push failed: %s. Data saved locally.", strings.TrimSpace(stderr)))
	}
}

// Sync commits the ledger and, with AutoPush, pushes it.
func (r *Repo) Sync(message string) error {
	if !r.HasGit() {
		r.Warn("git is not installed. Data is saved locally only.")
		return nil
	}

	if err := r.Commit(message); err != nil {
		return err
	}

	if !r.AutoPush {
		return nil
	}
	remotes, _, err := r.git("remote")
	if err != nil || strings.TrimSpace(remotes) == "" {
		r.Warn("No git remote configured. Data is saved locally only.")
		return nil
	}
	r.Push()
	return nil
}
