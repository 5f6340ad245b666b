package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwlorey/hours/internal/config"
	"github.com/wwlorey/hours/internal/ledger"
)

// scriptedKit answers prompts from a map and records the defaults offered.
type scriptedKit struct {
	answers  map[string]string
	defaults map[string]string
	confirm  bool
	asked    []string
}

func (k *scriptedKit) kit() PromptKit {
	k.defaults = map[string]string{}
	return PromptKit{
		Prompt: func(prompt, def string) (string, error) {
			k.defaults[prompt] = def
			if a, ok := k.answers[prompt]; ok {
				return a, nil
			}
			return def, nil
		},
		Confirm: func(prompt string) (bool, error) {
			k.asked = append(k.asked, prompt)
			return k.confirm, nil
		},
	}
}

func TestInitNonInteractive(t *testing.T) {
	env, repo := newTestEnv(t)
	dataDir := filepath.Join(t.TempDir(), "data")
	cmd, stdout, _ := testCmd()

	err := runInit(cmd, env, initOptions{
		dataDir:        dataDir,
		startDate:      "2025-01-28",
		remote:         "git@example.com:me/hours.git",
		nonInteractive: true,
	}, PromptKit{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hours initialized")

	cfg, err := config.Load(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.Data.Directory)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.True(t, cfg.Git.AutoPush)
	assert.Equal(t, "2025-01-28", cfg.Licensure.StartDate)
	assert.Equal(t, config.DefaultTotalHoursTarget, cfg.Licensure.TotalHoursTarget)

	data, err := os.ReadFile(filepath.Join(dataDir, ledger.FileName))
	require.NoError(t, err)
	assert.JSONEq(t, `{"weeks": []}`, string(data))

	assert.Equal(t, []string{"git@example.com:me/hours.git"}, repo.inits)
}

func TestInitWithoutRemoteDisablesPush(t *testing.T) {
	env, _ := newTestEnv(t)
	cmd, _, _ := testCmd()

	require.NoError(t, runInit(cmd, env, initOptions{
		dataDir: filepath.Join(t.TempDir(), "data"), startDate: "2025-01-28", nonInteractive: true,
	}, PromptKit{}))

	cfg, err := config.Load(env.configPath)
	require.NoError(t, err)
	assert.False(t, cfg.Git.AutoPush)
}

func TestInitNonInteractiveRequiresFlags(t *testing.T) {
	env, _ := newTestEnv(t)
	cmd, _, _ := testCmd()

	err := runInit(cmd, env, initOptions{startDate: "2025-01-28", nonInteractive: true}, PromptKit{})
	assert.ErrorContains(t, err, "--data-dir and --start-date are required")
	assert.NoFileExists(t, env.configPath)
}

func TestInitRejectsNonTuesday(t *testing.T) {
	env, _ := newTestEnv(t)
	cmd, _, _ := testCmd()

	err := runInit(cmd, env, initOptions{
		dataDir: t.TempDir(), startDate: "2025-01-27", nonInteractive: true,
	}, PromptKit{})
	assert.ErrorIs(t, err, ledger.ErrInvalidWeekStart)
	assert.ErrorContains(t, err, "Monday")
	assert.NoFileExists(t, env.configPath)
}

func TestInitKeepsExistingLedger(t *testing.T) {
	env, _ := newTestEnv(t)
	dataDir := t.TempDir()
	store := ledger.NewStore(filepath.Join(dataDir, ledger.FileName), env.log)
	l := ledger.New()
	require.NoError(t, l.Accumulate(date(2025, 1, 28), ledger.Direct, 4))
	require.NoError(t, store.Save(l))
	cmd, _, _ := testCmd()

	require.NoError(t, runInit(cmd, env, initOptions{
		dataDir: dataDir, startDate: "2025-01-28", nonInteractive: true,
	}, PromptKit{}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, l, got)
}

func TestInitRefusesCorruptLedger(t *testing.T) {
	env, repo := newTestEnv(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ledger.FileName), []byte("{"), 0o644))
	cmd, _, _ := testCmd()

	err := runInit(cmd, env, initOptions{
		dataDir: dataDir, startDate: "2025-01-28", nonInteractive: true,
	}, PromptKit{})
	assert.ErrorIs(t, err, ledger.ErrCorruptStore)
	assert.NoFileExists(t, env.configPath)
	assert.Empty(t, repo.inits)
}

func TestInitExistingConfigNonInteractive(t *testing.T) {
	env, _ := newInitializedEnv(t)
	cmd, _, _ := testCmd()

	err := runInit(cmd, env, initOptions{
		dataDir: t.TempDir(), startDate: "2025-01-28", nonInteractive: true,
	}, PromptKit{})
	assert.ErrorContains(t, err, "configuration already exists")
}

func TestInitInteractivePrompts(t *testing.T) {
	env, repo := newTestEnv(t)
	dataDir := filepath.Join(t.TempDir(), "data")
	k := &scriptedKit{answers: map[string]string{promptDataDir: dataDir}}
	cmd, _, _ := testCmd()

	require.NoError(t, runInit(cmd, env, initOptions{}, k.kit()))

	assert.Equal(t, defaultDataDir, k.defaults[promptDataDir])
	// the current week's Tuesday
	assert.Equal(t, "2025-02-11", k.defaults[promptStartDate])
	assert.Contains(t, k.defaults, promptRemote)

	cfg, err := config.Load(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-11", cfg.Licensure.StartDate)
	assert.Equal(t, []string{""}, repo.inits)
}

func TestInitInteractiveOverwriteDeclined(t *testing.T) {
	env, repo := newInitializedEnv(t)
	before, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	k := &scriptedKit{confirm: false}
	cmd, stdout, _ := testCmd()

	require.NoError(t, runInit(cmd, env, initOptions{}, k.kit()))

	assert.Len(t, k.asked, 1)
	assert.Contains(t, stdout.String(), "init cancelled")
	after, err := os.ReadFile(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, repo.inits)
}

func TestInitNoGit(t *testing.T) {
	env, repo := newTestEnv(t)
	env.noGit = true
	cmd, _, _ := testCmd()

	require.NoError(t, runInit(cmd, env, initOptions{
		dataDir: t.TempDir(), startDate: "2025-01-28", nonInteractive: true,
	}, PromptKit{}))
	assert.Empty(t, repo.inits)
}

func TestValidateInitAnswer(t *testing.T) {
	assert.NoError(t, validateInitAnswer(promptDataDir, "anything"))
	assert.NoError(t, validateInitAnswer(promptStartDate, "2025-01-28"))
	assert.ErrorIs(t, validateInitAnswer(promptStartDate, "2025-01-29"), ledger.ErrInvalidWeekStart)
	assert.Error(t, validateInitAnswer(promptStartDate, "soon"))
}
