package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", BuildTime)

	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Show enlil version information", versionCmd.Short)
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "enlil", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "NOAA SWPC")
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.Flags().Lookup("force"))
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"fetch", "animate", "purge", "thumbnail", "hooks", "config", "version", "completion"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "missing subcommand %s", name)
	}
}

// runCommand executes the root command with args and captures stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestHooksValidate(t *testing.T) {
	out, err := runCommand(t, "hooks", "validate", "--hooks-config", "testdata/pre-commit-config.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "4 hooks from 2 repositories")
}

func TestHooksValidateMissingFile(t *testing.T) {
	_, err := runCommand(t, "hooks", "validate", "--hooks-config", "testdata/nope.yaml")
	assert.Error(t, err)
}

func TestHooksList(t *testing.T) {
	out, err := runCommand(t, "hooks", "list", "--hooks-config", "testdata/pre-commit-config.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "https://github.com/pre-commit/pre-commit-hooks @ v4.4.0")
	assert.Contains(t, out, "  check-yaml")
	assert.Contains(t, out, "  golangci-lint (--timeout 5m)")
}

func TestConfigInit(t *testing.T) {
	path := t.TempDir() + "/enlil.yaml"
	out, err := runCommand(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to")

	// Second init must refuse to overwrite.
	_, err = runCommand(t, "config", "init", path)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "enlil version dev")
}
