// ABOUTME: Non-unix fallback for process termination
// ABOUTME: Without process groups only the direct child is killed

//go:build !unix

package tools

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
