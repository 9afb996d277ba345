package ports

import "errors"

var (
	// ErrNotFound covers unknown session ids and sessions with nothing journaled.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
