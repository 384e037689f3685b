package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCommand(t *testing.T) {
	out, err := executeCommand(t, "load", "testdata/store.yaml")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"players\t3", "teams\t1"}, lines)
}

func TestLoadCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "load", "testdata/store.yaml")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(3), data["players"])
	assert.Equal(t, float64(1), data["teams"])
}

func TestLoadCommand_FixtureViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
collections:
  - name: users
    indexes:
      - fields: [email]
        unique: true
    docs:
      - id: u1
        doc: { email: "a@b.c" }
      - id: u2
        doc: { email: "a@b.c" }
`), 0o644))

	_, err := executeCommand(t, "load", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to apply fixture")
}
