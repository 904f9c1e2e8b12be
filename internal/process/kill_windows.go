//go:build windows

// Package process cleans up browser child processes that outlive a closed
// DevTools connection.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a process and all its children with a taskkill
// tree kill. Best effort; the error is ignored because the launcher's own
// kill is the primary teardown path.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
