package remote

import (
	"context"

	"github.com/vitalog/vitalog/internal/models"
)

//go:generate moq -out adapter_mock.go . Adapter

// Adapter applies one outbox entry against the remote backend. An
// implementation must be idempotent per entity id and version:
// replaying an entry whose first response was lost must not create a
// duplicate remote record. Failures are returned as *Error with the
// class already decided.
type Adapter interface {
	Apply(ctx context.Context, entry *models.OutboxEntry) error
}
