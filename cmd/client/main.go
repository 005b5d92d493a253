package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vitalog/vitalog/internal/client/cli"
	"github.com/vitalog/vitalog/internal/client/data"
	"github.com/vitalog/vitalog/internal/client/netmon"
	"github.com/vitalog/vitalog/internal/client/remote"
	"github.com/vitalog/vitalog/internal/client/stats"
	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/client/storage/boltdb"
	syncsvc "github.com/vitalog/vitalog/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "vitalog-client.db", "Path to local database")
	syncInterval := flag.Duration("sync-interval", 5*time.Minute, "Periodic sync interval for watch")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	client := remote.NewClient(*serverURL, tokenSource(boltStorage))
	dataService := data.NewService(boltStorage, boltStorage)
	statsService := stats.NewService(boltStorage)

	monitor := netmon.NewPollingMonitor(
		netmon.HTTPProbe(*serverURL+"/healthz"),
		15*time.Second,
		30*time.Second,
		logger,
	)

	coordinatorCfg := syncsvc.DefaultConfig()
	coordinatorCfg.Interval = *syncInterval
	coordinator := syncsvc.NewCoordinator(boltStorage, boltStorage, client, monitor, coordinatorCfg, logger)

	switch command {
	case "register":
		err = cli.RunRegister(ctx, client, boltStorage)
	case "login":
		err = cli.RunLogin(ctx, client, boltStorage)
	case "logout":
		err = cli.RunLogout(ctx, boltStorage)
	case "put":
		err = cli.RunPut(ctx, args[1:], dataService)
	case "get":
		err = cli.RunGet(ctx, args[1:], dataService)
	case "list":
		err = cli.RunList(ctx, args[1:], dataService)
	case "delete":
		err = cli.RunDelete(ctx, args[1:], dataService)
	case "sync":
		err = cli.RunSync(ctx, coordinator)
	case "status":
		err = cli.RunStatus(ctx, boltStorage, boltStorage, monitorSnapshot(ctx, monitor))
	case "stats":
		err = cli.RunStats(ctx, statsService)
	case "watch":
		err = cli.RunWatch(ctx, coordinator, monitor)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// tokenSource supplies the stored access token to the remote client
func tokenSource(authStorage storage.AuthStorage) remote.TokenSource {
	return func(ctx context.Context) (string, error) {
		authData, err := authStorage.GetAuth(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrAuthNotFound) {
				return "", fmt.Errorf("not registered, run 'vitalog register' first")
			}
			return "", err
		}
		if time.Now().Unix() >= authData.ExpiresAt {
			return "", fmt.Errorf("access token expired, run 'vitalog login'")
		}
		return authData.AccessToken, nil
	}
}

// monitorSnapshot probes connectivity once for one-shot commands. The
// polling loop is only started by watch.
func monitorSnapshot(ctx context.Context, monitor *netmon.PollingMonitor) netmon.Monitor {
	monitor.Start(ctx)
	monitor.Stop()
	return monitor
}

func printVersion() {
	fmt.Printf("Vitalog Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
