package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vitalog/vitalog/internal/client/sync"
)

// RunSync runs one drain cycle and reports the result
func RunSync(ctx context.Context, coordinator *sync.Coordinator) error {
	fmt.Println("Syncing...")

	result, err := coordinator.SyncNow(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	printResult(result)

	if !result.Clean() {
		return fmt.Errorf("sync finished with failures")
	}
	return nil
}

func printResult(result *sync.Result) {
	fmt.Println()
	fmt.Println("Sync finished:")
	fmt.Printf("  Attempted: %d\n", result.Attempted)
	fmt.Printf("  Synced:    %d\n", result.Synced)
	if result.Conflicts > 0 {
		fmt.Printf("  Conflicts: %d\n", result.Conflicts)
	}
	if result.Failed > 0 {
		fmt.Printf("  Failed:    %d\n", result.Failed)
	}
	if result.Deferred > 0 {
		fmt.Printf("  Deferred:  %d (will retry with backoff)\n", result.Deferred)
	}
	fmt.Printf("  Duration:  %s\n", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
}
