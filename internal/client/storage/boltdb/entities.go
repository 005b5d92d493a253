package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/models"
)

// SaveWithOutbox persists the entity and the matching outbox entry in
// one bolt transaction. A later write to an entity with a still-pending
// entry coalesces into that entry instead of appending a second one, so
// the queue holds at most one entry per entity.
func (s *Storage) SaveWithOutbox(ctx context.Context, entity *models.Entity, op models.Operation) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var entryID uint64

	err := s.db.Update(func(tx *bbolt.Tx) error {
		entities := tx.Bucket(bucketEntities)
		outbox := tx.Bucket(bucketOutbox)
		index := tx.Bucket(bucketOutboxIndex)
		if entities == nil || outbox == nil || index == nil {
			return fmt.Errorf("%w: bucket missing", storage.ErrQueueCorrupted)
		}

		// A delete that coalesces away a pending create means the
		// server never saw the entity: drop both records entirely.
		pending, err := pendingEntry(outbox, index, entity.ID)
		if err != nil {
			return err
		}

		if op == models.OpDelete && pending != nil && pending.Operation == models.OpCreate {
			if err := outbox.Delete(itob(pending.EntryID)); err != nil {
				return fmt.Errorf("failed to drop pending create: %w", err)
			}
			if err := index.Delete([]byte(entity.ID)); err != nil {
				return fmt.Errorf("failed to drop outbox index: %w", err)
			}
			if err := entities.Delete([]byte(entity.ID)); err != nil {
				return fmt.Errorf("failed to drop entity: %w", err)
			}
			entryID = 0
			return nil
		}

		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
		if err := entities.Put([]byte(entity.ID), data); err != nil {
			return fmt.Errorf("failed to save entity: %w", err)
		}

		if pending != nil {
			// Coalesce: refresh the snapshot in place. A create stays a
			// create (the server hasn't seen the entity yet); a pending
			// delete followed by a new write becomes an update.
			switch {
			case op == models.OpDelete:
				pending.Operation = models.OpDelete
				pending.PayloadSnapshot = nil
			case pending.Operation == models.OpDelete:
				pending.Operation = models.OpUpdate
				pending.PayloadSnapshot = snapshot(entity.Payload)
			default:
				pending.PayloadSnapshot = snapshot(entity.Payload)
			}
			pending.Version = entity.Version
			pending.Kind = entity.Kind

			entryData, err := json.Marshal(pending)
			if err != nil {
				return fmt.Errorf("failed to marshal outbox entry: %w", err)
			}
			if err := outbox.Put(itob(pending.EntryID), entryData); err != nil {
				return fmt.Errorf("failed to update outbox entry: %w", err)
			}
			entryID = pending.EntryID
			return nil
		}

		id, err := outbox.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate entry id: %w", err)
		}

		entry := &models.OutboxEntry{
			EntryID:    id,
			EntityID:   entity.ID,
			Kind:       entity.Kind,
			Operation:  op,
			Version:    entity.Version,
			EnqueuedAt: entity.UpdatedAt,
		}
		if op != models.OpDelete {
			entry.PayloadSnapshot = snapshot(entity.Payload)
		}

		entryData, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal outbox entry: %w", err)
		}
		if err := outbox.Put(itob(id), entryData); err != nil {
			return fmt.Errorf("failed to append outbox entry: %w", err)
		}
		if err := index.Put([]byte(entity.ID), itob(id)); err != nil {
			return fmt.Errorf("failed to index outbox entry: %w", err)
		}

		entryID = id
		return nil
	})

	if err != nil {
		return 0, err
	}

	return entryID, nil
}

// Get retrieves an entity by id
func (s *Storage) Get(ctx context.Context, id string) (*models.Entity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entity *models.Entity

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		entity = &models.Entity{}
		if err := json.Unmarshal(data, entity); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		if entity.Deleted {
			return storage.ErrEntityNotFound
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return entity, nil
}

// List returns non-deleted entities of the kind, newest first
func (s *Storage) List(ctx context.Context, kind models.Kind, limit int) ([]*models.Entity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var entities []*models.Entity

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			entity := &models.Entity{}
			if err := json.Unmarshal(v, entity); err != nil {
				return fmt.Errorf("failed to unmarshal entity: %w", err)
			}
			if entity.Kind == kind && !entity.Deleted {
				entities = append(entities, entity)
			}
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].UpdatedAt.After(entities[j].UpdatedAt)
	})

	if limit > 0 && len(entities) > limit {
		entities = entities[:limit]
	}

	return entities, nil
}

// MarkSyncResult updates the entity's sync status if the stored version
// still matches. A stale ack for an older version is discarded so it
// never clobbers a newer local edit. A synced delete purges the local
// tombstone.
func (s *Storage) MarkSyncResult(ctx context.Context, id string, version int64, outcome models.SyncOutcome) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketEntities)
		if bucket == nil {
			return storage.ErrEntityNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			// Entity already purged; nothing to mark
			return nil
		}

		entity := &models.Entity{}
		if err := json.Unmarshal(data, entity); err != nil {
			return fmt.Errorf("failed to unmarshal entity: %w", err)
		}

		// Stale result: a newer local write superseded this version
		if entity.Version != version {
			return nil
		}

		if entity.Deleted && outcome == models.OutcomeSynced {
			if err := bucket.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to purge tombstone: %w", err)
			}
			return nil
		}

		entity.SyncStatus = outcome.Status()

		updated, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
		if err := bucket.Put([]byte(id), updated); err != nil {
			return fmt.Errorf("failed to update entity: %w", err)
		}

		return nil
	})
}

// snapshot copies the payload so later edits to the entity cannot
// mutate the queued value
func snapshot(payload json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(payload))
	copy(out, payload)
	return out
}
