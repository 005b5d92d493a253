package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalog/vitalog/internal/client/storage"
)

func TestAuth_SaveGetDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	data := &storage.AuthData{
		DeviceID:    "device-1",
		AccessToken: "token-abc",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, store.SaveAuth(ctx, data))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.DeleteAuth(ctx))

	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}
