// Package sqlite implements the server storage interfaces on a single
// SQLite file with embedded schema migrations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // database/sql driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Storage carries the shared connection behind the device and entity
// stores
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath, applies the embedded
// migrations and returns the storage. ":memory:" gives a throwaway
// database for tests.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection: SQLite serializes writes anyway, and it
	// keeps every statement on the same :memory: database in tests
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// applyPragmas configures the connection. The first statement doubles
// as the connectivity check, so New never needs a separate ping.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	for _, pragma := range []string{
		"journal_mode = WAL",
		"synchronous = NORMAL",
		"foreign_keys = ON",
		"busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, "PRAGMA "+pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}

// migrate brings the schema up to date from the embedded migration
// files
func migrate(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close closes the underlying connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for tests
func (s *Storage) DB() *sql.DB {
	return s.db
}
