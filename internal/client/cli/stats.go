package cli

import (
	"context"
	"fmt"

	"github.com/vitalog/vitalog/internal/client/stats"
	"github.com/vitalog/vitalog/internal/models"
)

// RunStats shows storage statistics
func RunStats(ctx context.Context, statsService stats.Service) error {
	report, err := statsService.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect statistics: %w", err)
	}

	fmt.Println("=== Storage Statistics ===")
	fmt.Println()
	fmt.Printf("Total records: %d\n", report.TotalEntities)
	for _, kind := range models.Kinds {
		fmt.Printf("  %-12s %d\n", kind, report.CountFor(kind))
	}
	fmt.Println()
	fmt.Printf("Pending sync:  %d\n", report.Snapshot.PendingCount)
	fmt.Printf("Storage size:  %s\n", formatBytes(report.Snapshot.ApproxStorageBytes))

	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
