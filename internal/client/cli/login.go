package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/client/remote"
	"github.com/vitalog/vitalog/internal/client/storage"
)

// RunLogin exchanges device credentials for a fresh access token
func RunLogin(ctx context.Context, client *remote.Client, authStorage storage.AuthStorage) error {
	fmt.Println("=== Device Login ===")
	fmt.Println()

	// Reuse the stored device id when present
	deviceID := ""
	if existing, err := authStorage.GetAuth(ctx); err == nil {
		deviceID = existing.DeviceID
		fmt.Printf("Device ID: %s\n", deviceID)
	} else if !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	if deviceID == "" {
		var err error
		deviceID, err = readInput("Device ID: ")
		if err != nil {
			return fmt.Errorf("failed to read device id: %w", err)
		}
		if deviceID == "" {
			return fmt.Errorf("device id cannot be empty")
		}
	}

	secret, err := readSecret("Device secret: ")
	if err != nil {
		return fmt.Errorf("failed to read secret: %w", err)
	}

	token, err := client.Login(ctx, deviceID, secret)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	authData := &storage.AuthData{
		DeviceID:    deviceID,
		AccessToken: token.AccessToken,
		ExpiresAt:   time.Now().Unix() + token.ExpiresIn,
	}
	if err := authStorage.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	fmt.Println()
	fmt.Println("Logged in successfully.")

	return nil
}

// RunLogout drops the stored access token. Local data stays put.
func RunLogout(ctx context.Context, authStorage storage.AuthStorage) error {
	if err := authStorage.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	fmt.Println("Logged out. Local data is untouched.")
	return nil
}
