package storage

import (
	"context"
	"time"
)

// EntityRecord is the server-side copy of a client entity. Records are
// scoped to the device that owns them.
type EntityRecord struct {
	UpdatedAt time.Time
	EntityID  string
	DeviceID  string
	Kind      string
	Payload   []byte
	Version   int64
	Deleted   bool
}

// EntityStorage defines the interface for server-side entity
// persistence. Writes follow last-writer-wins by version: a revision is
// applied only when its version is strictly greater than the stored
// one, which makes request replays harmless.
type EntityStorage interface {
	// Upsert stores the record if rec.Version is greater than the
	// stored version. Returns applied=false for an exact replay (equal
	// version). Returns ErrVersionConflict when the stored version is
	// strictly greater.
	Upsert(ctx context.Context, rec *EntityRecord) (applied bool, err error)

	// Tombstone soft-deletes the record. Deleting an unknown or already
	// deleted entity still succeeds; tombstones are idempotent.
	Tombstone(ctx context.Context, deviceID, entityID string, version int64, at time.Time) error

	// List returns the non-deleted records of the kind owned by the
	// device, newest first.
	List(ctx context.Context, deviceID, kind string) ([]*EntityRecord, error)
}
