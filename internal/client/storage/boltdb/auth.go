package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/vitalog/vitalog/internal/client/storage"
)

// authKey is the fixed key for the single device auth record
var authKey = []byte("device")

// SaveAuth stores or replaces the device auth data
func (s *Storage) SaveAuth(ctx context.Context, data *storage.AuthData) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal auth data: %w", err)
		}

		return bucket.Put(authKey, raw)
	})
}

// GetAuth retrieves the device auth data
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var data *storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return storage.ErrAuthNotFound
		}

		raw := bucket.Get(authKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}

		data = &storage.AuthData{}
		if err := json.Unmarshal(raw, data); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return data, nil
}

// DeleteAuth removes the device auth data
func (s *Storage) DeleteAuth(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(authKey)
	})
}
