package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/server/storage"
)

// Compile-time interface checks
var (
	_ storage.DeviceStorage = (*Storage)(nil)
	_ storage.EntityStorage = (*Storage)(nil)
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
	}

	return s, cleanup
}

func createTestDevice(t *testing.T, ctx context.Context, s *Storage) string {
	deviceID := uuid.New().String()
	device := &storage.Device{
		ID:         deviceID,
		SecretHash: "bcrypt-hash",
		CreatedAt:  time.Now(),
	}

	err := s.CreateDevice(ctx, device)
	require.NoError(t, err)

	return deviceID
}

func TestNew_RunsMigrations(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	// Both tables exist after migration
	var n int
	err := s.DB().QueryRow(`SELECT COUNT(*) FROM devices`).Scan(&n)
	require.NoError(t, err)

	err = s.DB().QueryRow(`SELECT COUNT(*) FROM entities`).Scan(&n)
	require.NoError(t, err)
}
