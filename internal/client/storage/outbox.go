package storage

import (
	"context"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

//go:generate moq -out outboxstorage_mock.go . OutboxStorage

// OutboxStorage defines the interface for the durable queue of pending
// remote operations. Entries are ordered by insertion (EntryID) and at
// most one entry exists per entity at any time, which keeps per-entity
// FIFO trivially intact.
type OutboxStorage interface {
	// PeekBatch returns up to maxSize entries in FIFO order whose
	// backoff delay has elapsed at now. Entries stay in the queue until
	// removed or requeued.
	PeekBatch(ctx context.Context, maxSize int, now time.Time) ([]*models.OutboxEntry, error)

	// Remove deletes an entry after a confirmed success or a permanent
	// failure classification, but only while its stored Version still
	// equals version. A mismatch means a newer write coalesced into the
	// entry after it was read; the entry stays queued and removed is
	// false.
	Remove(ctx context.Context, entryID uint64, version int64) (removed bool, err error)

	// Requeue records a transient failure: increments AttemptCount,
	// stores the cause and schedules the next attempt with exponential
	// backoff. When the attempt limit is exceeded the entry is removed
	// instead and retained is false; the caller surfaces the entity as
	// failed.
	Requeue(ctx context.Context, entryID uint64, cause string, now time.Time) (entry *models.OutboxEntry, retained bool, err error)

	// PendingCount returns the number of queued entries
	PendingCount(ctx context.Context) (int, error)

	// PendingEntryForEntity returns the queued entry for the entity.
	// Returns ErrEntryNotFound if the entity has nothing queued.
	PendingEntryForEntity(ctx context.Context, entityID string) (*models.OutboxEntry, error)
}
