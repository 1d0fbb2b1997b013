package interview

import "context"

// SessionStore maps opaque session identifiers to sessions. Implementations
// must support concurrent use for distinct identifiers; serialization of
// operations on one session is the controller's job.
type SessionStore interface {
	// Get returns the session stored under id, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (Session, error)
	// Put stores the session under id, replacing any previous value.
	Put(ctx context.Context, id string, s Session) error
}
