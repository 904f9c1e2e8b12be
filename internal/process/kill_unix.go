//go:build !windows

// Package process cleans up browser child processes that outlive a closed
// DevTools connection.
package process

import "syscall"

// KillProcessGroup kills a process and all its children by signalling the
// process group (negative PID). Best effort; the error is ignored because
// the launcher's own kill is the primary teardown path.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
