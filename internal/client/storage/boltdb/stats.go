package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/models"
)

// Snapshot returns a consistent point-in-time view over entities and
// the outbox. It runs in one bolt View transaction and never touches
// the sync coordinator's lock, so it is safe during an active cycle.
func (s *Storage) Snapshot(ctx context.Context) (*storage.StatsSnapshot, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	snap := &storage.StatsSnapshot{
		TakenAt:      time.Now(),
		CountsByKind: make(map[models.Kind]int, len(models.Kinds)),
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		snap.ApproxStorageBytes = tx.Size()

		if entities := tx.Bucket(bucketEntities); entities != nil {
			err := entities.ForEach(func(k, v []byte) error {
				entity := &models.Entity{}
				if err := json.Unmarshal(v, entity); err != nil {
					return fmt.Errorf("failed to unmarshal entity: %w", err)
				}
				if !entity.Deleted {
					snap.CountsByKind[entity.Kind]++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		if outbox := tx.Bucket(bucketOutbox); outbox != nil {
			snap.PendingCount = outbox.Stats().KeyN
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return snap, nil
}
