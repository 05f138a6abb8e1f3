// Package apperr defines sentinel errors shared across Klinika services.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned when an operation is refused because the target
	// journal entry is locked. Callers treat it as a policy refusal, not a fault.
	ErrLocked        = errors.New("entry is locked")
	ErrAlreadyExists = errors.New("already exists")
)
