package verifier

import "sync"

type requestLock struct {
	mu   sync.Mutex
	refs int
}

var (
	locksMu      sync.Mutex
	requestLocks = map[string]*requestLock{}
)

// lockRequest serializes verification flows for a single request. Nothing in
// the sequential flow itself stops two concurrent uploads for the same request
// from racing, so the lock is taken for the whole run. Entries are refcounted
// and dropped from the map once the last holder releases them.
func lockRequest(requestID string) func() {
	locksMu.Lock()
	lock, ok := requestLocks[requestID]
	if !ok {
		lock = &requestLock{}
		requestLocks[requestID] = lock
	}
	lock.refs++
	locksMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		locksMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(requestLocks, requestID)
		}
		locksMu.Unlock()
	}
}
