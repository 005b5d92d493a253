package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketAuth        = []byte("auth")
	bucketEntities    = []byte("entities")
	bucketOutbox      = []byte("outbox")
	bucketOutboxIndex = []byte("outbox_index") // entityID -> entryID
)

// Config holds retry policy knobs for the outbox
type Config struct {
	// MaxAttempts is the number of transient failures an entry survives
	// before it is classified as permanently failed
	MaxAttempts int

	// BackoffBase is the delay after the first transient failure;
	// it doubles per attempt up to BackoffCap
	BackoffBase time.Duration
	BackoffCap  time.Duration
}

// DefaultConfig returns the retry policy used when none is supplied
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BackoffBase: 2 * time.Second,
		BackoffCap:  5 * time.Minute,
	}
}

// Storage represents BoltDB storage implementation for the client.
// It backs the entity store, the outbox queue, device auth data and the
// stats snapshot, all over one database file so that paired writes
// share a single transaction.
type Storage struct {
	db  *bbolt.DB
	cfg Config
}

// New creates a new BoltDB storage instance with the default retry policy.
// dbPath is the path to the BoltDB database file.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	return NewWithConfig(ctx, dbPath, DefaultConfig())
}

// NewWithConfig creates a new BoltDB storage instance
func NewWithConfig(ctx context.Context, dbPath string, cfg Config) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, cfg: cfg}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets creates the required buckets if they don't exist
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketAuth, bucketEntities, bucketOutbox, bucketOutboxIndex} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// itob converts an entry id to a big-endian key, so byte order equals
// numeric order and the outbox cursor walks entries FIFO
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// btoi converts a big-endian key back to an entry id
func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
