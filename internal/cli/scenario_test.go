package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioCommand_Pass(t *testing.T) {
	out, err := executeCommand(t, "scenario", "testdata/scenario.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `"scenario":"cli_smoke"`)
	assert.Contains(t, out, `"outcome":"UNIQUE_CONSTRAINT_VIOLATION"`)
	assert.Contains(t, out, `"count":1`)
}

func TestScenarioCommand_FailureExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: failing
description: "expects an error that never happens"
fixture:
  collections:
    - name: users
steps:
  - op: add
    collection: users
    id: u1
    doc: { email: "a@b.c" }
    expect_error: UNIQUE_CONSTRAINT_VIOLATION
`), 0o644))

	out, err := executeCommand(t, "scenario", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "expectation mismatch")
	// Snapshot is still printed for inspection.
	assert.True(t, strings.Contains(out, `"scenario":"failing"`))
}

func TestScenarioCommand_BadFile(t *testing.T) {
	_, err := executeCommand(t, "scenario", "testdata/nope.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
