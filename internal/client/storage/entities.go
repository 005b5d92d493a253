package storage

import (
	"context"

	"github.com/vitalog/vitalog/internal/models"
)

//go:generate moq -out entitystorage_mock.go . EntityStorage

// EntityStorage defines the interface for the durable local entity store
type EntityStorage interface {
	// SaveWithOutbox persists the entity and appends (or coalesces) the
	// matching outbox entry in one durable transaction. A crash cannot
	// separate the two. Returns the outbox entry id.
	SaveWithOutbox(ctx context.Context, entity *models.Entity, op models.Operation) (uint64, error)

	// Get retrieves an entity by id.
	// Returns ErrEntityNotFound if the entity doesn't exist.
	Get(ctx context.Context, id string) (*models.Entity, error)

	// List returns non-deleted entities of the kind ordered by
	// UpdatedAt descending. limit <= 0 means no limit.
	List(ctx context.Context, kind models.Kind, limit int) ([]*models.Entity, error)

	// MarkSyncResult updates the entity's sync status, but only if the
	// stored version still matches the version the outcome refers to.
	// Stale results are discarded, not applied, so a late ack never
	// clobbers a newer local edit.
	MarkSyncResult(ctx context.Context, id string, version int64, outcome models.SyncOutcome) error
}
