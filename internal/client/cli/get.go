package cli

import (
	"context"
	"fmt"

	"github.com/vitalog/vitalog/internal/client/data"
)

// RunGet shows one record. Usage: get <id>
func RunGet(ctx context.Context, args []string, dataService data.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: vitalog get <id>")
	}

	entity, err := dataService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	printEntity(entity)
	return nil
}
