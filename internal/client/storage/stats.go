package storage

import (
	"context"
	"time"

	"github.com/vitalog/vitalog/internal/models"
)

// StatsSnapshot is a consistent point-in-time view over the entity
// store and the outbox, taken in a single read transaction.
type StatsSnapshot struct {
	TakenAt            time.Time
	CountsByKind       map[models.Kind]int
	PendingCount       int
	ApproxStorageBytes int64
}

// StatsStorage defines the read-only observability interface. Safe to
// call concurrently with an in-progress sync cycle: it never waits on
// the coordinator's lock.
type StatsStorage interface {
	// Snapshot returns entity counts by kind, the outbox backlog and
	// the approximate on-disk size.
	Snapshot(ctx context.Context) (*StatsSnapshot, error)
}
