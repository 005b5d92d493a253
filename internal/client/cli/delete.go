package cli

import (
	"context"
	"fmt"

	"github.com/vitalog/vitalog/internal/client/data"
)

// RunDelete deletes a record. Usage: delete <id>
func RunDelete(ctx context.Context, args []string, dataService data.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: vitalog delete <id>")
	}

	if err := dataService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	fmt.Printf("Deleted %s\n", args[0])
	fmt.Println("The delete is queued and will sync when the server is reachable.")

	return nil
}
