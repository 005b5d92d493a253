package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalog/vitalog/internal/client/netmon"
	"github.com/vitalog/vitalog/internal/client/sync"
)

// RunWatch keeps the client syncing in the background: the network
// monitor and the periodic ticker drive drain cycles until the process
// is interrupted.
func RunWatch(ctx context.Context, coordinator *sync.Coordinator, monitor *netmon.PollingMonitor) error {
	fmt.Println("Watching for changes. Press Ctrl+C to stop.")

	unsubscribe := coordinator.Subscribe(func(event sync.Event) {
		switch event.Status {
		case sync.StatusSyncing:
			fmt.Println("Sync started...")
		case sync.StatusSuccess:
			fmt.Printf("Sync done: %d synced\n", event.Result.Synced)
		case sync.StatusError:
			fmt.Printf("Sync finished with problems: %d failed, %d conflicts, %d deferred\n",
				event.Result.Failed, event.Result.Conflicts, event.Result.Deferred)
		}
	})
	defer unsubscribe()

	monitor.Start(ctx)
	defer monitor.Stop()

	coordinator.Start(ctx)
	defer coordinator.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case <-sigCh:
		fmt.Println()
		fmt.Println("Stopping...")
	}

	return nil
}
