package interview

import "sync"

// sessionLocks serializes operations per session identifier. The shared
// session map in the store is safe for concurrent use across sessions, but
// two submissions racing on one session would both consume the same
// question; holding the per-id lock across the read-modify-write keeps the
// one-question-per-submission invariant.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for id and returns its unlock function.
func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
