// ABOUTME: Shell command execution tool with timeout supervision
// ABOUTME: Commands are tokenized with shell quoting rules and run without a shell

package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

func (ts *toolset) executeCommand(ctx context.Context, args map[string]any) Result {
	command := strings.TrimSpace(stringArg(args, "command", ""))
	if command == "" {
		return failuref("Command is required")
	}

	workDir := stringArg(args, "working_directory", "")

	secs, ok := numberArg(args, "timeout", ts.cfg.CommandTimeout.Seconds())
	if !ok || secs <= 0 {
		return failuref("timeout must be a positive number of seconds")
	}
	timeout := time.Duration(secs * float64(time.Second))

	argv, err := splitCommand(command)
	if err != nil || len(argv) == 0 {
		return failurePayload(map[string]any{
			"error":   fmt.Sprintf("Invalid command: %s", command),
			"command": command,
		})
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = workDir
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return failurePayload(map[string]any{
			"error":   fmt.Sprintf("Command timed out after %g seconds", timeout.Seconds()),
			"command": command,
			"timeout": timeout.Seconds(),
		})
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			if errors.Is(runErr, exec.ErrNotFound) {
				return failurePayload(map[string]any{
					"error":   fmt.Sprintf("Command not found: %s", argv[0]),
					"command": command,
				})
			}
			return failurePayload(map[string]any{
				"error":   fmt.Sprintf("Execution error: %v", runErr),
				"command": command,
			})
		}
	}

	dirLabel := workDir
	if dirLabel == "" {
		dirLabel = "current directory"
	}

	return jsonResult(map[string]any{
		"command":           command,
		"return_code":       cmd.ProcessState.ExitCode(),
		"stdout":            strings.ToValidUTF8(stdout.String(), "�"),
		"stderr":            strings.ToValidUTF8(stderr.String(), "�"),
		"success":           cmd.ProcessState.ExitCode() == 0,
		"working_directory": dirLabel,
		"timeout_used":      timeout.Seconds(),
	})
}

// splitCommand tokenizes with shell quoting rules, falling back to plain
// whitespace splitting when the input has unbalanced quotes.
func splitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		argv = strings.Fields(command)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return argv, nil
}
