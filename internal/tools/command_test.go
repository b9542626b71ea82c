// ABOUTME: Tests for the shell command execution tool
// ABOUTME: Covers success, exit codes, timeouts, missing binaries, and tokenization

//go:build unix

package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommand_Success(t *testing.T) {
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": "echo hello world",
	})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "echo hello world", payload["command"])
	assert.Equal(t, float64(0), payload["return_code"])
	assert.Equal(t, "hello world\n", payload["stdout"])
	assert.Equal(t, "", payload["stderr"])
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "current directory", payload["working_directory"])
}

func TestExecuteCommand_QuotedArguments(t *testing.T) {
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": `echo "hello world"`,
	})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "hello world\n", payload["stdout"])
}

func TestExecuteCommand_NonZeroExit(t *testing.T) {
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": "sh -c 'exit 3'",
	})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, float64(3), payload["return_code"])
	assert.Equal(t, false, payload["success"])
}

func TestExecuteCommand_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command":           "pwd",
		"working_directory": dir,
	})
	require.False(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, dir, payload["working_directory"])
	assert.Equal(t, dir, strings.TrimSpace(payload["stdout"].(string)))
}

func TestExecuteCommand_Timeout(t *testing.T) {
	// The child records its pid before sleeping so we can verify it was
	// killed, not abandoned.
	pidFile := filepath.Join(t.TempDir(), "child.pid")
	command := fmt.Sprintf("sh -c 'echo $$ > %s; sleep 10'", pidFile)

	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": command,
		"timeout": 0.2,
	})
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Contains(t, payload["error"], "Command timed out")
	assert.Equal(t, command, payload["command"])
	assert.Equal(t, 0.2, payload["timeout"])

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return syscall.Kill(pid, 0) != nil
	}, 2*time.Second, 10*time.Millisecond, "child process %d survived the timeout", pid)
}

func TestExecuteCommand_NotFound(t *testing.T) {
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": "definitely-not-a-real-binary-xyz",
	})
	require.True(t, res.IsError)

	payload := decodeResult(t, res)
	assert.Equal(t, "Command not found: definitely-not-a-real-binary-xyz", payload["error"])
}

func TestExecuteCommand_Empty(t *testing.T) {
	res := newToolset().executeCommand(context.Background(), map[string]any{
		"command": "   ",
	})
	require.True(t, res.IsError)
	assert.Contains(t, res.Text, "Command is required")
}

func TestSplitCommand(t *testing.T) {
	argv, err := splitCommand(`echo "a b" c`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "a b", "c"}, argv)

	// Unbalanced quotes fall back to whitespace splitting.
	argv, err = splitCommand(`echo "unclosed`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", `"unclosed`}, argv)
}
