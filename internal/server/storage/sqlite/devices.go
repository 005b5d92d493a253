package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vitalog/vitalog/internal/server/storage"
)

// CreateDevice registers a device.
// Returns ErrDeviceAlreadyExists if the id is taken.
func (s *Storage) CreateDevice(ctx context.Context, device *storage.Device) error {
	query := `
		INSERT INTO devices (id, secret_hash, created_at, last_login_at)
		VALUES (?, ?, ?, 0)
	`

	_, err := s.db.ExecContext(ctx, query,
		device.ID,
		device.SecretHash,
		device.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrDeviceAlreadyExists
		}
		return fmt.Errorf("failed to insert device: %w", err)
	}

	return nil
}

// GetDevice retrieves a device by id.
// Returns ErrDeviceNotFound if the device is not registered.
func (s *Storage) GetDevice(ctx context.Context, id string) (*storage.Device, error) {
	query := `
		SELECT id, secret_hash, created_at, last_login_at
		FROM devices
		WHERE id = ?
	`

	device := &storage.Device{}
	var createdAt, lastLoginAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&device.ID,
		&device.SecretHash,
		&createdAt,
		&lastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	device.CreatedAt = time.Unix(createdAt, 0)
	device.LastLoginAt = time.Unix(lastLoginAt, 0)

	return device, nil
}

// UpdateLastLogin records a successful login
func (s *Storage) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE devices SET last_login_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, at.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDeviceNotFound
	}

	return nil
}
