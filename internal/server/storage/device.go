package storage

import (
	"context"
	"time"
)

// Device is a registered client device. SecretHash is the bcrypt hash
// of the device secret; the plaintext never touches disk.
type Device struct {
	CreatedAt   time.Time
	LastLoginAt time.Time
	ID          string
	SecretHash  string
}

// DeviceStorage defines the interface for device registration data
type DeviceStorage interface {
	// CreateDevice registers a device.
	// Returns ErrDeviceAlreadyExists if the id is taken.
	CreateDevice(ctx context.Context, device *Device) error

	// GetDevice retrieves a device by id.
	// Returns ErrDeviceNotFound if the device is not registered.
	GetDevice(ctx context.Context, id string) (*Device, error)

	// UpdateLastLogin records a successful login
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
