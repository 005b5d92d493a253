package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/server/storage"
)

// Upsert stores the record under last-writer-wins by version. The read
// and the write share one transaction so two racing upserts for the
// same entity cannot both pass the version check.
func (s *Storage) Upsert(ctx context.Context, rec *storage.EntityRecord) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var stored int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM entities WHERE device_id = ? AND entity_id = ?`,
		rec.DeviceID, rec.EntityID,
	).Scan(&stored)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First revision of this entity
	case err != nil:
		return false, fmt.Errorf("failed to check existing entity: %w", err)
	case stored == rec.Version:
		// Replay of an already applied revision: ack without writing
		return false, nil
	case stored > rec.Version:
		return false, storage.ErrVersionConflict
	}

	query := `
		INSERT INTO entities (entity_id, device_id, kind, payload, version, deleted, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT (device_id, entity_id) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload,
			version = excluded.version,
			deleted = 0,
			updated_at = excluded.updated_at
	`

	_, err = tx.ExecContext(ctx, query,
		rec.EntityID,
		rec.DeviceID,
		rec.Kind,
		rec.Payload,
		rec.Version,
		rec.UpdatedAt.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert entity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}

	return true, nil
}

// Tombstone soft-deletes the record. Unknown entities still get a
// tombstone row, so a delete whose create never arrived acks too.
func (s *Storage) Tombstone(ctx context.Context, deviceID, entityID string, version int64, at time.Time) error {
	query := `
		INSERT INTO entities (entity_id, device_id, kind, payload, version, deleted, updated_at)
		VALUES (?, ?, '', NULL, ?, 1, ?)
		ON CONFLICT (device_id, entity_id) DO UPDATE SET
			payload = NULL,
			version = MAX(entities.version, excluded.version),
			deleted = 1,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, entityID, deviceID, version, at.Unix())
	if err != nil {
		return fmt.Errorf("failed to tombstone entity: %w", err)
	}

	return nil
}

// List returns the non-deleted records of the kind owned by the
// device, newest first
func (s *Storage) List(ctx context.Context, deviceID, kind string) ([]*storage.EntityRecord, error) {
	query := `
		SELECT entity_id, device_id, kind, payload, version, deleted, updated_at
		FROM entities
		WHERE device_id = ? AND kind = ? AND deleted = 0
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, deviceID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*storage.EntityRecord
	for rows.Next() {
		rec := &storage.EntityRecord{}
		var deleted int
		var updatedAt int64

		err := rows.Scan(
			&rec.EntityID,
			&rec.DeviceID,
			&rec.Kind,
			&rec.Payload,
			&rec.Version,
			&deleted,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}

		rec.Deleted = deleted != 0
		rec.UpdatedAt = time.Unix(updatedAt, 0)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
