package config

import (
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwlorey/hours/internal/ledger"
)

const sampleConfig = `[data]
directory = "/tmp/hours-data"

[git]
remote = "origin"
auto_push = true

[licensure]
start_date = "2025-01-28"
total_hours_target = 3000
direct_hours_target = 1200
min_months = 24
min_weekly_average = 15.0
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "/tmp/hours-data", cfg.DataDir())
	assert.Equal(t, "/tmp/hours-data/hours.json", cfg.DataFile())
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.True(t, cfg.Git.AutoPush)
	assert.Equal(t, 3000, cfg.Licensure.TotalHoursTarget)
	assert.Equal(t, 1200, cfg.Licensure.DirectHoursTarget)
	assert.Equal(t, 24, cfg.Licensure.MinMonths)
	assert.Equal(t, 15.0, cfg.Licensure.MinWeeklyAverage)

	start, err := cfg.StartDate()
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: 1, Day: 28}, start)
}

func TestLoadDataDirOverride(t *testing.T) {
	t.Setenv(EnvDataDir, "/elsewhere")

	cfg, err := Load(writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", cfg.DataDir())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "Run 'hours init'")
}

func TestLoadRejectsNonTuesdayStart(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	content := `[data]
directory = "/tmp/x"
[git]
remote = "origin"
auto_push = false
[licensure]
start_date = "2025-01-29"
total_hours_target = 3000
direct_hours_target = 1200
min_months = 24
min_weekly_average = 15.0
`
	_, err := Load(writeConfig(t, content))

	assert.ErrorIs(t, err, ledger.ErrInvalidWeekStart)
}

func TestLoadRejectsMissingFields(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	_, err := Load(writeConfig(t, "[git]\nremote = \"origin\"\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Directory")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default("/data/hours", "git@example.com:me/hours.git", civil.Date{Year: 2025, Month: 1, Day: 28})

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[licensure]")
	assert.Contains(t, string(raw), `start_date = "2025-01-28"`)
}

func TestDefaultAutoPushFollowsRemote(t *testing.T) {
	start := civil.Date{Year: 2025, Month: 1, Day: 28}
	assert.True(t, Default("/d", "url", start).Git.AutoPush)
	assert.False(t, Default("/d", "", start).Git.AutoPush)
	assert.Equal(t, DefaultRemote, Default("/d", "", start).Git.Remote)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Sync/.hours"), ExpandHome("~/Sync/.hours"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x"))
}

func TestDirFromEnv(t *testing.T) {
	t.Setenv(EnvConfigDir, "/cfg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/cfg", dir)
	assert.Equal(t, "/cfg/config.toml", Path(dir))
}

func TestNoGitFromEnv(t *testing.T) {
	t.Setenv(EnvNoGit, "1")
	assert.True(t, NoGitFromEnv())
	t.Setenv(EnvNoGit, "0")
	assert.False(t, NoGitFromEnv())
}
