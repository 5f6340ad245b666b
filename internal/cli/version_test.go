package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionDefault(t *testing.T) {
	SetVersionInfo("dev", "none", "unknown")

	stdout, _, err := execRoot("version")

	assert.NoError(t, err)
	assert.Equal(t, "hours dev (commit: none, built: unknown)\n", stdout)
}

func TestVersionRelease(t *testing.T) {
	SetVersionInfo("1.0.0", "abc1234", "2025-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	stdout, _, err := execRoot("version")

	assert.NoError(t, err)
	assert.Equal(t, "hours 1.0.0 (commit: abc1234, built: 2025-01-01)\n", stdout)
}
