package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vitalog/vitalog/internal/client/data"
	"github.com/vitalog/vitalog/internal/models"
)

// RunList lists records of a kind, newest first.
// Usage: list <kind> [limit]
func RunList(ctx context.Context, args []string, dataService data.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: vitalog list <kind> [limit]")
	}

	kind := models.Kind(args[0])

	limit := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[1])
		}
		limit = n
	}

	entities, err := dataService.List(ctx, kind, limit)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(entities) == 0 {
		fmt.Printf("No %s records found.\n", kind)
		return nil
	}

	fmt.Printf("Found %d %s record(s):\n", len(entities), kind)
	fmt.Println()

	for i, entity := range entities {
		fmt.Printf("%d. %s\n", i+1, entity.ID)
		fmt.Printf("   Version: %d  Status: %s  Updated: %s\n",
			entity.Version, entity.SyncStatus, entity.UpdatedAt.Format(time.RFC3339))
		fmt.Printf("   %s\n", entity.Payload)
		fmt.Println()
	}

	return nil
}
