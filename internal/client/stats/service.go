// Package stats exposes read-only usage figures for the local store
package stats

import (
	"context"
	"fmt"

	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/models"
)

// Service defines the interface for the statistics service
type Service interface {
	// Snapshot returns a point-in-time report over the local store
	Snapshot(ctx context.Context) (*Report, error)
}

// Report aggregates a storage snapshot for presentation
type Report struct {
	Snapshot      *storage.StatsSnapshot
	TotalEntities int
}

// CountFor returns the entity count for the kind
func (r *Report) CountFor(kind models.Kind) int {
	return r.Snapshot.CountsByKind[kind]
}

type service struct {
	stats storage.StatsStorage
}

// NewService creates a new statistics service
func NewService(stats storage.StatsStorage) Service {
	return &service{stats: stats}
}

// Snapshot returns a point-in-time report over the local store
func (s *service) Snapshot(ctx context.Context) (*Report, error) {
	snap, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take storage snapshot: %w", err)
	}

	total := 0
	for _, n := range snap.CountsByKind {
		total += n
	}

	return &Report{
		Snapshot:      snap,
		TotalEntities: total,
	}, nil
}
