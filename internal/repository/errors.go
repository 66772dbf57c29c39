package repository

import "errors"

var (
	ErrDBNotReady = errors.New("database not initialized")
	// ErrConcurrentModification means the row changed between read and write.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrNoChange lets a mutation abort without writing.
	ErrNoChange = errors.New("no change")
)
