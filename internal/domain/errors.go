package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure kinds.
var (
	// ErrEmptyTurn rejects a turn with no message text and no attachment.
	ErrEmptyTurn = errors.New("message or file is required")

	// ErrNoCredential means the backend API key is absent. The detail stays
	// in server logs; clients only ever see a generic message.
	ErrNoCredential = errors.New("backend credential is not configured")

	// ErrEmptyResponse marks a candidate model that returned a blank body.
	// The gateway treats it like a transport failure and moves on.
	ErrEmptyResponse = errors.New("empty response from model")
)

// ExhaustedError reports that every candidate model failed. Last carries the
// final candidate's underlying error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("all %d candidate models failed", e.Attempts)
	}
	return fmt.Sprintf("all %d candidate models failed: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// CorruptStateError reports unparsable durable state. Stores return it next
// to an empty collection; callers log it and keep going.
type CorruptStateError struct {
	Source string
	Cause  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt topic state in %s: %v", e.Source, e.Cause)
}

func (e *CorruptStateError) Unwrap() error { return e.Cause }
