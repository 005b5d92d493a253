package storage

import "errors"

// Common client storage errors
var (
	// ErrEntityNotFound indicates that no entity exists for the id
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntryNotFound indicates that outbox entry was not found
	ErrEntryNotFound = errors.New("outbox entry not found")

	// ErrAuthNotFound indicates that no device auth data exists
	ErrAuthNotFound = errors.New("auth data not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrQueueCorrupted indicates the outbox violated a local storage
	// invariant. Fatal for sync: the local store needs a reset, the
	// error is never swallowed.
	ErrQueueCorrupted = errors.New("outbox queue corrupted")
)
