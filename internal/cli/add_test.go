package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwlorey/hours/internal/ledger"
)

func TestAddAccumulates(t *testing.T) {
	env, repo := newInitializedEnv(t)
	cmd, stdout, _ := testCmd()

	require.NoError(t, runAdd(cmd, env, "2025-01-28", "direct", 2))
	require.NoError(t, runAdd(cmd, env, "2025-01-28", "direct", 1.5))

	assert.Contains(t, stdout.String(), "Added 2.0 direct hours for week of 2025-01-28")
	assert.Contains(t, stdout.String(), "Added 1.5 direct hours for week of 2025-01-28")
	assert.Equal(t, []string{
		"Add 2 direct hours for week of 2025-01-28",
		"Add 1.5 direct hours for week of 2025-01-28",
	}, repo.syncs)

	w, ok := loadLedger(t, env).Find(date(2025, 1, 28))
	require.True(t, ok)
	assert.Equal(t, 3.5, w.Direct)
	assert.Equal(t, date(2025, 2, 3), w.End)
}

func TestAddDefaultsToCurrentWeek(t *testing.T) {
	env, _ := newInitializedEnv(t)
	cmd, _, _ := testCmd()

	require.NoError(t, runAdd(cmd, env, "", "indirect", 1))

	w, ok := loadLedger(t, env).Find(date(2025, 2, 11))
	require.True(t, ok)
	assert.Equal(t, 1.0, w.Indirect)
}

func TestAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		week     string
		category string
		hours    float64
		check    func(t *testing.T, err error)
	}{
		{"unknown category", "2025-01-28", "bogus", 1, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "invalid category 'bogus'. Valid categories: individual_supervision, group_supervision, direct, indirect")
		}},
		{"negative hours", "2025-01-28", "direct", -1, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
		}},
		{"not a tuesday", "2025-01-29", "direct", 1, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ledger.ErrInvalidWeekStart)
			assert.ErrorContains(t, err, "Tuesday")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, repo := newInitializedEnv(t)
			before, err := os.ReadFile(env.cfg.DataFile())
			require.NoError(t, err)
			cmd, _, _ := testCmd()

			tt.check(t, runAdd(cmd, env, tt.week, tt.category, tt.hours))

			after, err := os.ReadFile(env.cfg.DataFile())
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Empty(t, repo.syncs)
		})
	}
}

func TestAddSyncFailureStillSaves(t *testing.T) {
	env, repo := newInitializedEnv(t)
	repo.syncErr = assert.AnError
	cmd, _, _ := testCmd()

	err := runAdd(cmd, env, "2025-01-28", "direct", 2)
	assert.ErrorContains(t, err, "git sync failed")

	w, ok := loadLedger(t, env).Find(date(2025, 1, 28))
	require.True(t, ok)
	assert.Equal(t, 2.0, w.Direct)
}

func TestAddCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOURS_CONFIG_DIR", dir)
	t.Setenv("HOURS_NO_GIT", "1")

	_, _, err := execRoot("init", "--non-interactive", "--data-dir", dir+"/data", "--start-date", "2025-01-28")
	require.NoError(t, err)

	stdout, _, err := execRoot("add", "--non-interactive", "--week", "2025-01-28", "--category", "group_supervision", "--hours", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added 2.0 group_supervision hours for week of 2025-01-28")

	stdout, _, err = execRoot("list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"start": "2025-01-28", "end": "2025-02-03",
		"individual_supervision": 0, "group_supervision": 2,
		"direct": 0, "indirect": 0, "total": 2
	}]`, stdout)
}

func TestAddCommandMissingFlags(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOURS_CONFIG_DIR", dir)
	t.Setenv("HOURS_NO_GIT", "1")
	_, _, err := execRoot("init", "--non-interactive", "--data-dir", dir+"/data", "--start-date", "2025-01-28")
	require.NoError(t, err)

	_, stderr, err := execRoot("add", "--non-interactive", "--category", "direct")
	assert.Error(t, err)
	assert.Contains(t, stderr, "error: --category and --hours are required")
}

func TestAddCommandNeedsTerminal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOURS_CONFIG_DIR", dir)
	t.Setenv("HOURS_NO_GIT", "1")
	_, _, err := execRoot("init", "--non-interactive", "--data-dir", dir+"/data", "--start-date", "2025-01-28")
	require.NoError(t, err)

	_, _, err = execRoot("add")
	assert.ErrorIs(t, err, errNeedsTerminal)
}
