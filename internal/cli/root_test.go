package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHasSubcommands(t *testing.T) {
	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	for _, want := range []string{"init", "add", "edit", "list", "summary", "export", "completion", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootUseName(t *testing.T) {
	assert.Equal(t, "hours", rootCmd.Use)
	assert.Same(t, rootCmd, Root())
}

func TestRootPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("no-git"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestExecuteReportsErrors(t *testing.T) {
	_, stderr, err := execRoot("completion", "tcsh")

	assert.Error(t, err)
	assert.Contains(t, stderr, "error: unsupported shell: tcsh")
}
