// Package data implements the UI-facing read/write API. Every write
// lands locally first and enqueues the matching remote operation in the
// same transaction; callers never wait on the network.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service defines the interface for the client data service
type Service interface {
	// Put validates and persists a record. An empty id creates a new
	// entity; an existing id produces the next version. The returned
	// entity reflects what was stored.
	Put(ctx context.Context, kind models.Kind, id string, payload json.RawMessage) (*models.Entity, error)

	// Get retrieves a non-deleted entity by id
	Get(ctx context.Context, id string) (*models.Entity, error)

	// List returns non-deleted entities of the kind, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, kind models.Kind, limit int) ([]*models.Entity, error)

	// Delete soft-deletes an entity and enqueues the remote tombstone
	Delete(ctx context.Context, id string) error
}

// service handles client-side data operations
type service struct {
	entities storage.EntityStorage
	outbox   storage.OutboxStorage
}

// NewService creates a new data service
func NewService(entities storage.EntityStorage, outbox storage.OutboxStorage) Service {
	return &service{
		entities: entities,
		outbox:   outbox,
	}
}

// Put validates and persists a record locally, enqueueing the matching
// remote operation atomically
func (s *service) Put(ctx context.Context, kind models.Kind, id string, payload json.RawMessage) (*models.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind: %s", kind)
	}
	if err := validation.ValidatePayload(kind, payload); err != nil {
		return nil, err
	}

	if id == "" {
		id = uuid.New().String()
	}

	version, op, err := s.nextVersion(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	entity := &models.Entity{
		ID:         id,
		Kind:       kind,
		Payload:    payload,
		Version:    version,
		SyncStatus: models.StatusLocal,
		Source:     models.SourceLocal,
		UpdatedAt:  time.Now(),
	}

	if _, err := s.entities.SaveWithOutbox(ctx, entity, op); err != nil {
		return nil, fmt.Errorf("failed to save entity: %w", err)
	}

	return entity, nil
}

// nextVersion resolves the version and operation for a write to id.
// A queued delete still holds the version chain for the entity, so a
// write after a local delete continues from it instead of restarting
// at one.
func (s *service) nextVersion(ctx context.Context, kind models.Kind, id string) (int64, models.Operation, error) {
	existing, err := s.entities.Get(ctx, id)
	if err == nil {
		if existing.Kind != kind {
			return 0, "", fmt.Errorf("entity %s is a %s, not a %s", id, existing.Kind, kind)
		}
		return existing.Version + 1, models.OpUpdate, nil
	}
	if !errors.Is(err, storage.ErrEntityNotFound) {
		return 0, "", fmt.Errorf("failed to get entity: %w", err)
	}

	pending, err := s.outbox.PendingEntryForEntity(ctx, id)
	if err == nil && pending.Operation == models.OpDelete {
		return pending.Version + 1, models.OpUpdate, nil
	}
	if err != nil && !errors.Is(err, storage.ErrEntryNotFound) {
		return 0, "", fmt.Errorf("failed to check outbox: %w", err)
	}

	return 1, models.OpCreate, nil
}

// Get retrieves a non-deleted entity by id
func (s *service) Get(ctx context.Context, id string) (*models.Entity, error) {
	entity, err := s.entities.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return entity, nil
}

// List returns non-deleted entities of the kind, newest first
func (s *service) List(ctx context.Context, kind models.Kind, limit int) ([]*models.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind: %s", kind)
	}

	entities, err := s.entities.List(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}

// Delete marks the entity as deleted (soft delete) and enqueues the
// remote tombstone
func (s *service) Delete(ctx context.Context, id string) error {
	existing, err := s.entities.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", err)
	}

	tombstone := existing.Clone()
	tombstone.Deleted = true
	tombstone.Payload = nil
	tombstone.Version = existing.Version + 1
	tombstone.SyncStatus = models.StatusLocal
	tombstone.UpdatedAt = time.Now()

	if _, err := s.entities.SaveWithOutbox(ctx, tombstone, models.OpDelete); err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}

	return nil
}
