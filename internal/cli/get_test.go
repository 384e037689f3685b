package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "get", "players", "p2",
		"--fixture", "testdata/store.yaml")
	require.NoError(t, err)
	assert.Equal(t, `{"age":22,"name":"bob","team":"blue"}`, strings.TrimSpace(out))
}

func TestGetCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "--format", "json", "get", "teams", "t1",
		"--fixture", "testdata/store.yaml")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "t1", data["id"])
	assert.Equal(t, map[string]any{"city": "berlin"}, data["doc"])
}

func TestGetCommand_Select(t *testing.T) {
	out, err := executeCommand(t, "get", "players", "p1",
		"--fixture", "testdata/store.yaml",
		"--select", "name=who",
		"--select", "missing=gone")
	require.NoError(t, err)
	assert.Equal(t, `{"gone":null,"who":"alice"}`, strings.TrimSpace(out))
}

func TestGetCommand_NotFound(t *testing.T) {
	out, err := executeCommand(t, "get", "players", "ghost",
		"--fixture", "testdata/store.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DOCUMENT_NOT_FOUND")
}

func TestGetCommand_UnknownCollection(t *testing.T) {
	out, err := executeCommand(t, "get", "ghosts", "p1",
		"--fixture", "testdata/store.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "UNKNOWN_COLLECTION")
}
