package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vitalog/vitalog/internal/client/data"
	"github.com/vitalog/vitalog/internal/models"
)

// RunPut saves a record. Usage: put <kind> <json> [id]
func RunPut(ctx context.Context, args []string, dataService data.Service) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: vitalog put <kind> <json> [id]")
	}

	kind := models.Kind(args[0])
	payload := json.RawMessage(args[1])

	id := ""
	if len(args) > 2 {
		id = args[2]
	}

	entity, err := dataService.Put(ctx, kind, id, payload)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	fmt.Printf("Saved %s %s (version %d)\n", entity.Kind, entity.ID, entity.Version)
	fmt.Println("The change is queued and will sync when the server is reachable.")

	return nil
}
