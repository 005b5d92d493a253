package storage

import "context"

// AuthData holds the device credentials for the sync API
type AuthData struct {
	DeviceID    string `json:"device_id"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // Unix seconds
}

// AuthStorage defines interface for storing device auth data on client
type AuthStorage interface {
	// SaveAuth stores or replaces the device auth data
	SaveAuth(ctx context.Context, data *AuthData) error

	// GetAuth retrieves the device auth data.
	// Returns ErrAuthNotFound if the device is not registered.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the device auth data
	DeleteAuth(ctx context.Context) error
}
