package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalog/vitalog/internal/client/remote"
	"github.com/vitalog/vitalog/internal/client/storage"
)

// RunRegister registers this device with the server and logs it in.
// The generated device id is printed; together with the secret it is
// what recovers access from another session.
func RunRegister(ctx context.Context, client *remote.Client, authStorage storage.AuthStorage) error {
	fmt.Println("=== Device Registration ===")
	fmt.Println()

	secret, err := readSecret("Device secret: ")
	if err != nil {
		return fmt.Errorf("failed to read secret: %w", err)
	}
	if secret == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	confirm, err := readSecret("Confirm secret: ")
	if err != nil {
		return fmt.Errorf("failed to read secret: %w", err)
	}
	if secret != confirm {
		return fmt.Errorf("secrets do not match")
	}

	deviceID := uuid.New().String()

	if err := client.Register(ctx, deviceID, secret); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	token, err := client.Login(ctx, deviceID, secret)
	if err != nil {
		return fmt.Errorf("login after registration failed: %w", err)
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
	fmt.Println("Device registered successfully.")
	fmt.Printf("Device ID: %s\n", deviceID)
	fmt.Println("Keep the device id and secret; you need both to log in again.")

	return nil
}
