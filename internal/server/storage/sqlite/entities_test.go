package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/server/storage"
)

func testRecord(deviceID, entityID string, version int64) *storage.EntityRecord {
	return &storage.EntityRecord{
		EntityID:  entityID,
		DeviceID:  deviceID,
		Kind:      "workout",
		Payload:   []byte(`{"name":"run"}`),
		Version:   version,
		UpdatedAt: time.Now(),
	}
}

func TestUpsert_NewEntity(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	applied, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 1))
	require.NoError(t, err)
	assert.True(t, applied)

	records, err := s.List(ctx, deviceID, "workout")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "w-1", records[0].EntityID)
	assert.Equal(t, int64(1), records[0].Version)
}

func TestUpsert_NewerVersionWins(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 1))
	require.NoError(t, err)

	rec := testRecord(deviceID, "w-1", 2)
	rec.Payload = []byte(`{"name":"long run"}`)

	applied, err := s.Upsert(ctx, rec)
	require.NoError(t, err)
	assert.True(t, applied)

	records, err := s.List(ctx, deviceID, "workout")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].Version)
	assert.JSONEq(t, `{"name":"long run"}`, string(records[0].Payload))
}

func TestUpsert_ReplayAcksWithoutWrite(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 3))
	require.NoError(t, err)

	// Same version again, e.g. the first response was lost
	applied, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 3))
	require.NoError(t, err)
	assert.False(t, applied)

	records, err := s.List(ctx, deviceID, "workout")
	require.NoError(t, err)
	require.Len(t, records, 1, "replay creates no duplicate")
}

func TestUpsert_StaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 5))
	require.NoError(t, err)

	_, err = s.Upsert(ctx, testRecord(deviceID, "w-1", 4))
	assert.ErrorIs(t, err, storage.ErrVersionConflict)

	// Stored record untouched
	records, err := s.List(ctx, deviceID, "workout")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].Version)
}

func TestTombstone(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 1))
	require.NoError(t, err)

	require.NoError(t, s.Tombstone(ctx, deviceID, "w-1", 2, time.Now()))

	records, err := s.List(ctx, deviceID, "workout")
	require.NoError(t, err)
	assert.Empty(t, records, "tombstoned entities leave the listing")
}

func TestTombstone_UnknownEntityStillAcks(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	// Delete for an entity the server never saw
	require.NoError(t, s.Tombstone(ctx, deviceID, "ghost", 1, time.Now()))

	// Replay too
	require.NoError(t, s.Tombstone(ctx, deviceID, "ghost", 1, time.Now()))
}

func TestTombstone_KeepsHighestVersion(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceID := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceID, "w-1", 7))
	require.NoError(t, err)

	require.NoError(t, s.Tombstone(ctx, deviceID, "w-1", 3, time.Now()))

	var version int64
	err = s.DB().QueryRow(
		`SELECT version FROM entities WHERE device_id = ? AND entity_id = ?`,
		deviceID, "w-1",
	).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, int64(7), version)
}

func TestList_ScopedToDeviceAndKind(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	deviceA := createTestDevice(t, ctx, s)
	deviceB := createTestDevice(t, ctx, s)

	_, err := s.Upsert(ctx, testRecord(deviceA, "w-1", 1))
	require.NoError(t, err)

	meal := testRecord(deviceA, "m-1", 1)
	meal.Kind = "meal"
	_, err = s.Upsert(ctx, meal)
	require.NoError(t, err)

	_, err = s.Upsert(ctx, testRecord(deviceB, "w-2", 1))
	require.NoError(t, err)

	records, err := s.List(ctx, deviceA, "workout")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "w-1", records[0].EntityID)
}
