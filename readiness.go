package mdexport

import "sync"

// renderState is the coordinator's view of the backend's progress.
type renderState int

const (
	// stateWaiting means at least one of the two completion signals is
	// still outstanding.
	stateWaiting renderState = iota
	// stateReady means both load and render work finished without failure.
	stateReady
	// stateFailed means the backend reported a failure.
	stateFailed
)

// readiness tracks the two independent completion signals a backend fires
// while rendering. Load and work completion may arrive in any order; the
// state is ready only once both have fired without a failure. Reset starts
// a new export session; signals are never cleared otherwise.
type readiness struct {
	mu       sync.Mutex
	loadDone bool
	workDone bool
	failed   bool
	err      error
}

// Reset clears all signals at the start of an export.
func (r *readiness) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadDone = false
	r.workDone = false
	r.failed = false
	r.err = nil
}

// MarkLoadFinished records page-load completion.
func (r *readiness) MarkLoadFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadDone = true
}

// MarkWorkFinished records initial-render completion.
func (r *readiness) MarkWorkFinished() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workDone = true
}

// Fail records a backend failure. The first reported error wins.
func (r *readiness) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.failed {
		r.failed = true
		r.err = err
	}
}

// State returns the current render state.
func (r *readiness) State() renderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.failed:
		return stateFailed
	case r.loadDone && r.workDone:
		return stateReady
	default:
		return stateWaiting
	}
}

// Err returns the recorded failure, or nil.
func (r *readiness) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
