// Package cli implements the command handlers for the vitalog client
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/vitalog/vitalog/internal/models"
)

func PrintUsage() {
	fmt.Println("Vitalog Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  vitalog [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version            Show version information")
	fmt.Println("  --server URL         Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH            Path to local database (default: vitalog-client.db)")
	fmt.Println("  --sync-interval DUR  Periodic sync interval for watch (default: 5m)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                 Register this device with the server")
	fmt.Println("  login                    Obtain an access token for a registered device")
	fmt.Println("  logout                   Drop the stored access token")
	fmt.Println("  put <kind> <json> [id]   Save a record (profile, workout, meal, measurement)")
	fmt.Println("  get <id>                 Show a record")
	fmt.Println("  list <kind> [limit]      List records, newest first")
	fmt.Println("  delete <id>              Delete a record")
	fmt.Println("  sync                     Push pending changes to the server now")
	fmt.Println("  status                   Show auth state and sync backlog")
	fmt.Println("  stats                    Show storage statistics")
	fmt.Println("  watch                    Keep syncing in the background until interrupted")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  vitalog register")
	fmt.Println("  vitalog put workout '{\"name\":\"morning run\",\"minutes\":35}'")
	fmt.Println("  vitalog put measurement '{\"value\":72.5,\"unit\":\"kg\"}'")
	fmt.Println("  vitalog list workout 10")
	fmt.Println("  vitalog sync")
	fmt.Println("  vitalog --server https://example.com watch")
}

// readInput reads a line from stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readSecret reads a secret without echoing it
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	secretBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(secretBytes), nil
}

// printEntity renders one entity to stdout
func printEntity(entity *models.Entity) {
	fmt.Printf("ID:      %s\n", entity.ID)
	fmt.Printf("Kind:    %s\n", entity.Kind)
	fmt.Printf("Version: %d\n", entity.Version)
	fmt.Printf("Status:  %s\n", entity.SyncStatus)
	fmt.Printf("Updated: %s\n", entity.UpdatedAt.Format(time.RFC3339))

	var pretty map[string]any
	if err := json.Unmarshal(entity.Payload, &pretty); err == nil {
		if out, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			fmt.Printf("Payload:\n%s\n", out)
			return
		}
	}
	fmt.Printf("Payload: %s\n", entity.Payload)
}
