package models

import (
	"encoding/json"
	"time"
)

// Operation represents the remote operation an outbox entry carries
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// OutboxEntry represents a pending remote operation derived from a
// local write. EntryID is assigned by the queue in insertion order, so
// iterating entries by EntryID preserves FIFO order. PayloadSnapshot is
// captured at enqueue time and immutable afterwards, except when a
// later write to the same entity coalesces into a still-pending entry.
type OutboxEntry struct {
	EnqueuedAt      time.Time       `json:"enqueued_at"`
	NextAttemptAt   time.Time       `json:"next_attempt_at"`
	EntityID        string          `json:"entity_id"`
	Kind            Kind            `json:"kind"`
	Operation       Operation       `json:"operation"`
	LastError       string          `json:"last_error,omitempty"`
	PayloadSnapshot json.RawMessage `json:"payload_snapshot,omitempty"`
	EntryID         uint64          `json:"entry_id"`
	Version         int64           `json:"version"`
	AttemptCount    int             `json:"attempt_count"`
}

// Ready reports whether the entry's backoff delay has elapsed
func (e *OutboxEntry) Ready(now time.Time) bool {
	return !e.NextAttemptAt.After(now)
}

// SyncOutcome is the per-entry result the coordinator reports back to
// the entity store after a remote attempt.
type SyncOutcome string

const (
	OutcomePending  SyncOutcome = "pending"
	OutcomeSynced   SyncOutcome = "synced"
	OutcomeConflict SyncOutcome = "conflict"
	OutcomeFailed   SyncOutcome = "failed"
)

// Status maps an outcome to the entity sync status it produces
func (o SyncOutcome) Status() SyncStatus {
	switch o {
	case OutcomePending:
		return StatusPending
	case OutcomeSynced:
		return StatusSynced
	case OutcomeConflict:
		return StatusConflict
	default:
		return StatusFailed
	}
}
