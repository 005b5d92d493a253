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

// pendingEntry resolves the queued entry for an entity via the index.
// Returns nil when the entity has nothing queued. An index pointing at
// a missing entry is a corruption, not a miss.
func pendingEntry(outbox, index *bbolt.Bucket, entityID string) (*models.OutboxEntry, error) {
	idxVal := index.Get([]byte(entityID))
	if idxVal == nil {
		return nil, nil
	}

	data := outbox.Get(idxVal)
	if data == nil {
		return nil, fmt.Errorf("%w: index references missing entry %d for entity %s",
			storage.ErrQueueCorrupted, btoi(idxVal), entityID)
	}

	entry := &models.OutboxEntry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, fmt.Errorf("%w: undecodable entry %d: %v", storage.ErrQueueCorrupted, btoi(idxVal), err)
	}

	return entry, nil
}

// PeekBatch returns up to maxSize entries in FIFO order whose backoff
// delay has elapsed. Keys are big-endian entry ids, so the bolt cursor
// already walks them in insertion order.
func (s *Storage) PeekBatch(ctx context.Context, maxSize int, now time.Time) ([]*models.OutboxEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entries []*models.OutboxEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			entry := &models.OutboxEntry{}
			if err := json.Unmarshal(v, entry); err != nil {
				return fmt.Errorf("%w: undecodable entry %d: %v", storage.ErrQueueCorrupted, btoi(k), err)
			}
			if !entry.Ready(now) {
				continue
			}
			entries = append(entries, entry)
			if maxSize > 0 && len(entries) >= maxSize {
				break
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Remove deletes an entry after a confirmed success or a permanent
// failure classification. The delete is gated on the stored version:
// when a later write coalesced into the entry while its old snapshot
// was in flight, the stored version no longer matches and the entry
// stays queued so the newer snapshot still syncs.
func (s *Storage) Remove(ctx context.Context, entryID uint64, version int64) (bool, error) {
	if s.db == nil {
		return false, storage.ErrStorageClosed
	}

	var removed bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		outbox := tx.Bucket(bucketOutbox)
		index := tx.Bucket(bucketOutboxIndex)
		if outbox == nil || index == nil {
			return fmt.Errorf("%w: bucket missing", storage.ErrQueueCorrupted)
		}

		data := outbox.Get(itob(entryID))
		if data == nil {
			return storage.ErrEntryNotFound
		}

		entry := &models.OutboxEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("%w: undecodable entry %d: %v", storage.ErrQueueCorrupted, entryID, err)
		}

		if entry.Version != version {
			return nil
		}

		removed = true
		return removeEntry(outbox, index, entryID)
	})

	if err != nil {
		return false, err
	}

	return removed, nil
}

// Requeue records a transient failure on the entry. Past the attempt
// limit the entry is dropped and retained is false; the caller then
// marks the entity as failed.
func (s *Storage) Requeue(ctx context.Context, entryID uint64, cause string, now time.Time) (*models.OutboxEntry, bool, error) {
	if s.db == nil {
		return nil, false, storage.ErrStorageClosed
	}

	var (
		entry    *models.OutboxEntry
		retained bool
	)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		outbox := tx.Bucket(bucketOutbox)
		index := tx.Bucket(bucketOutboxIndex)
		if outbox == nil || index == nil {
			return fmt.Errorf("%w: bucket missing", storage.ErrQueueCorrupted)
		}

		data := outbox.Get(itob(entryID))
		if data == nil {
			return storage.ErrEntryNotFound
		}

		entry = &models.OutboxEntry{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("%w: undecodable entry %d: %v", storage.ErrQueueCorrupted, entryID, err)
		}

		entry.AttemptCount++
		entry.LastError = cause

		if entry.AttemptCount >= s.cfg.MaxAttempts {
			retained = false
			return removeEntry(outbox, index, entryID)
		}

		entry.NextAttemptAt = now.Add(s.backoff(entry.AttemptCount))
		retained = true

		updated, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal outbox entry: %w", err)
		}
		return outbox.Put(itob(entryID), updated)
	})

	if err != nil {
		return nil, false, err
	}

	return entry, retained, nil
}

// PendingCount returns the number of queued entries
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

// PendingEntryForEntity returns the queued entry for the entity
func (s *Storage) PendingEntryForEntity(ctx context.Context, entityID string) (*models.OutboxEntry, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entry *models.OutboxEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		outbox := tx.Bucket(bucketOutbox)
		index := tx.Bucket(bucketOutboxIndex)
		if outbox == nil || index == nil {
			return fmt.Errorf("%w: bucket missing", storage.ErrQueueCorrupted)
		}

		found, err := pendingEntry(outbox, index, entityID)
		if err != nil {
			return err
		}
		if found == nil {
			return storage.ErrEntryNotFound
		}
		entry = found
		return nil
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// removeEntry deletes the entry and its index mapping, tolerating an
// index that has already been repointed at a newer entry
func removeEntry(outbox, index *bbolt.Bucket, entryID uint64) error {
	data := outbox.Get(itob(entryID))
	if data == nil {
		return storage.ErrEntryNotFound
	}

	entry := &models.OutboxEntry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return fmt.Errorf("%w: undecodable entry %d: %v", storage.ErrQueueCorrupted, entryID, err)
	}

	if err := outbox.Delete(itob(entryID)); err != nil {
		return fmt.Errorf("failed to delete outbox entry: %w", err)
	}

	idxVal := index.Get([]byte(entry.EntityID))
	if idxVal != nil && btoi(idxVal) == entryID {
		if err := index.Delete([]byte(entry.EntityID)); err != nil {
			return fmt.Errorf("failed to delete outbox index: %w", err)
		}
	}

	return nil
}

// backoff computes the exponential delay for the given attempt count
func (s *Storage) backoff(attempts int) time.Duration {
	d := s.cfg.BackoffBase
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= s.cfg.BackoffCap {
			return s.cfg.BackoffCap
		}
	}
	if d > s.cfg.BackoffCap {
		return s.cfg.BackoffCap
	}
	return d
}
