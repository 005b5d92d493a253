package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitalog/vitalog/internal/server/handlers"
	"github.com/vitalog/vitalog/internal/server/middleware"
	"github.com/vitalog/vitalog/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "vitalog-server.db", "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (or VITALOG_JWT_SECRET)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Access token lifetime")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	secret := *jwtSecret
	if secret == "" {
		secret = os.Getenv("VITALOG_JWT_SECRET")
	}
	if secret == "" {
		logger.Error("JWT secret is required, pass --jwt-secret or set VITALOG_JWT_SECRET")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *addr, *dbPath, secret, *tokenTTL); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, addr, dbPath, jwtSecret string, tokenTTL time.Duration) error {
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(jwtSecret),
		AccessTokenTTL: tokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	entityHandler := handlers.NewEntityHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authMW := middleware.AuthMiddleware(logger, jwtConfig)
	// Credential guessing protection on the auth endpoints
	authRateLimit := middleware.RateLimitMiddleware(10, time.Minute, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.Handle("POST /api/v1/auth/register", authRateLimit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", authRateLimit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("PUT /api/v1/entities/{kind}/{id}", authMW(http.HandlerFunc(entityHandler.Upsert)))
	mux.Handle("DELETE /api/v1/entities/{kind}/{id}", authMW(http.HandlerFunc(entityHandler.Tombstone)))
	mux.Handle("GET /api/v1/entities/{kind}", authMW(http.HandlerFunc(entityHandler.List)))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/healthz"})(mux),
	)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func printVersion() {
	fmt.Printf("Vitalog Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
