// Package store provides session store implementations backing the
// interview controller: a process-local map and a redis-backed variant.
package store

import (
	"context"
	"sync"

	"github.com/hireflow/interviewd/internal/interview"
)

// Memory is an in-process session store. Safe for concurrent use across
// sessions. Sessions are stored by value; the interview transition functions
// are copy-on-write, so handing the value back out does not alias mutable
// state.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]interview.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]interview.Session)}
}

func (m *Memory) Get(_ context.Context, id string) (interview.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	return session, nil
}

func (m *Memory) Put(_ context.Context, id string, s interview.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = s
	return nil
}

// Len returns the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
