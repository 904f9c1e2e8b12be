package process

import "testing"

// Only an invalid PID is safe to exercise here: PID 0 would signal the test
// runner's own process group, and real PIDs would hit live processes. The
// actual kill path is covered by browser teardown in practice.
func TestKillProcessGroupInvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
