package screengrab

import "sync"

// lastErrState is the process-wide record of the most recent capture-stack
// failure. Every failing operation overwrites it; successes leave it alone.
var lastErrState = struct {
	mu  sync.Mutex
	err error
}{}

// setLastError records err as the most recent failure. nil is ignored.
func setLastError(err error) {
	if err == nil {
		return
	}
	lastErrState.mu.Lock()
	lastErrState.err = err
	lastErrState.mu.Unlock()
}

// LastError returns the most recent failure recorded by any session in this
// process, or nil if none occurred since process start or the last
// ClearLastError. Reading does not clear the slot.
func LastError() error {
	lastErrState.mu.Lock()
	defer lastErrState.mu.Unlock()
	return lastErrState.err
}

// ClearLastError resets the process-wide error slot.
func ClearLastError() {
	lastErrState.mu.Lock()
	lastErrState.err = nil
	lastErrState.mu.Unlock()
}
