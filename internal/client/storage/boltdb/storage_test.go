package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/vitalog/vitalog/internal/client/storage"
)

// Compile-time interface checks
var (
	_ storage.EntityStorage = (*Storage)(nil)
	_ storage.OutboxStorage = (*Storage)(nil)
	_ storage.StatsStorage  = (*Storage)(nil)
	_ storage.AuthStorage   = (*Storage)(nil)
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "vitalog-test.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketAuth, bucketEntities, bucketOutbox, bucketOutboxIndex} {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	invalidPath := string([]byte{0})
	store, err := New(ctx, invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	err = store.Close()
	assert.NoError(t, err)
	assert.Nil(t, store.db)

	// Second Close is a no-op
	err = store.Close()
	assert.NoError(t, err)

	// Calls after Close fail with ErrStorageClosed
	_, err = store.Get(context.Background(), "any")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.PendingCount(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestBackoff(t *testing.T) {
	store := &Storage{cfg: DefaultConfig()}

	assert.Equal(t, store.cfg.BackoffBase, store.backoff(1))
	assert.Equal(t, 2*store.cfg.BackoffBase, store.backoff(2))
	assert.Equal(t, 4*store.cfg.BackoffBase, store.backoff(3))
	// Delay never exceeds the cap
	assert.Equal(t, store.cfg.BackoffCap, store.backoff(20))
}
