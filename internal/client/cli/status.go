package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/client/netmon"
	"github.com/vitalog/vitalog/internal/client/storage"
)

// RunStatus shows auth state, connectivity and the sync backlog
func RunStatus(ctx context.Context, authStorage storage.AuthStorage, outbox storage.OutboxStorage, monitor netmon.Monitor) error {
	fmt.Println("=== Vitalog Status ===")
	fmt.Println()

	authData, err := authStorage.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		fmt.Println("Auth:     not registered (run 'vitalog register')")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		fmt.Printf("Device:   %s\n", authData.DeviceID)
		expires := time.Unix(authData.ExpiresAt, 0)
		if time.Now().After(expires) {
			fmt.Println("Auth:     token expired (run 'vitalog login')")
		} else {
			fmt.Printf("Auth:     token valid until %s\n", expires.Format(time.RFC3339))
		}
	}

	fmt.Printf("Network:  %s\n", monitor.State())

	pending, err := outbox.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read backlog: %w", err)
	}
	if pending == 0 {
		fmt.Println("Backlog:  empty, everything is synced")
	} else {
		fmt.Printf("Backlog:  %d change(s) waiting to sync\n", pending)
	}

	return nil
}
