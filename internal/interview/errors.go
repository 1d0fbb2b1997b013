package interview

import "errors"

var (
	// ErrSessionNotFound is returned when the session identifier is unknown
	// to the session store.
	ErrSessionNotFound = errors.New("interview session not found")

	// ErrGenerationFailed is returned when question generation produced an
	// empty question list for a new session.
	ErrGenerationFailed = errors.New("interview question generation failed")

	// ErrMissingAnswer is returned when an answer submission carries no
	// transcript and no transcribable input.
	ErrMissingAnswer = errors.New("answer transcript or media input is required")
)
