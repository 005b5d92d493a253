// Package sync drives the outbox drain. The coordinator owns the sync
// triggers (manual, connectivity regained, periodic) and guarantees at
// most one cycle runs at a time.
package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/vitalog/vitalog/internal/client/netmon"
	"github.com/vitalog/vitalog/internal/client/remote"
	"github.com/vitalog/vitalog/internal/client/storage"
	"github.com/vitalog/vitalog/internal/models"
	"github.com/vitalog/vitalog/pkg/api"
)

// ErrSyncInProgress is returned when a cycle is already running. The
// request is not lost: the running cycle reruns once it finishes.
var ErrSyncInProgress = errors.New("sync already in progress")

// Status represents the coordinator state
type Status int

const (
	StatusIdle Status = iota
	StatusSyncing
	StatusSuccess
	StatusError
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusSyncing:
		return "syncing"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Result contains the counts of one drain cycle
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Attempted  int // entries taken from the queue
	Synced     int // acknowledged by the server
	Conflicts  int // refused with a version conflict
	Failed     int // permanent failures and exhausted retries
	Deferred   int // requeued with backoff after a transient failure
}

// Clean reports whether the cycle settled every attempted entry
// without a permanent failure. Deferred entries retry on their own
// backoff and do not dirty the result.
func (r *Result) Clean() bool {
	return r.Failed == 0 && r.Conflicts == 0
}

// Event is delivered to subscribers on every status transition.
// Result is nil while the cycle is still running.
type Event struct {
	Result *Result
	Status Status
}

// Config tunes the coordinator
type Config struct {
	Interval  time.Duration // periodic trigger; 0 disables the ticker
	BatchSize int           // entries per queue read
	AutoSync  bool          // enables the periodic trigger
}

// DefaultConfig returns the default coordinator tuning
func DefaultConfig() Config {
	return Config{
		Interval:  5 * time.Minute,
		BatchSize: 50,
		AutoSync:  true,
	}
}

// Coordinator drains the outbox against the remote adapter. Cycles are
// single-flight: a trigger that arrives mid-cycle sets a rerun flag and
// the running cycle drains again before going idle.
type Coordinator struct {
	logger   *slog.Logger
	entities storage.EntityStorage
	outbox   storage.OutboxStorage
	adapter  remote.Adapter
	monitor  netmon.Monitor
	cfg      Config

	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()

	mu         stdsync.Mutex
	status     Status
	lastResult *Result
	running    bool
	rerun      bool
	subs       map[int]func(Event)
	nextSubID  int
}

// NewCoordinator creates a sync coordinator
func NewCoordinator(
	entities storage.EntityStorage,
	outbox storage.OutboxStorage,
	adapter remote.Adapter,
	monitor netmon.Monitor,
	cfg Config,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		entities: entities,
		outbox:   outbox,
		adapter:  adapter,
		monitor:  monitor,
		cfg:      cfg,
		logger:   logger,
		subs:     make(map[int]func(Event)),
	}
}

// Start wires the automatic triggers: the connectivity transition and,
// when enabled, the periodic ticker. Both are backlog-gated: an empty
// queue never starts a cycle.
func (c *Coordinator) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	c.unsubscribe = c.monitor.Subscribe(func(state netmon.State) {
		if state == netmon.Online {
			c.logger.Info("connectivity regained, checking backlog")
			go c.backlogSync(runCtx)
		}
	})

	go c.loop(runCtx)
}

// Stop halts the triggers and waits for the ticker loop to exit. A
// cycle already in flight finishes on its own.
func (c *Coordinator) Stop() {
	if c.cancel == nil {
		return
	}
	c.unsubscribe()
	c.cancel()
	<-c.done
	c.cancel = nil
}

// Status returns the current coordinator status
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastResult returns the result of the most recent completed cycle,
// or nil if none has run
func (c *Coordinator) LastResult() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResult
}

// Subscribe registers a callback fired on every status transition.
// The returned function unsubscribes.
func (c *Coordinator) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// SyncNow runs a drain cycle and blocks until it completes. If a cycle
// is already running it returns ErrSyncInProgress and the running cycle
// reruns, so the caller's changes still reach the server.
func (c *Coordinator) SyncNow(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	if c.running {
		c.rerun = true
		c.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	c.running = true
	c.status = StatusSyncing
	c.mu.Unlock()

	c.publish(Event{Status: StatusSyncing})
	c.logger.Info("sync cycle started")

	var (
		result *Result
		err    error
	)
	for {
		result, err = c.cycle(ctx)

		c.mu.Lock()
		if c.rerun && err == nil {
			c.rerun = false
			c.mu.Unlock()
			c.logger.Debug("rerunning cycle for changes made mid-sync")
			continue
		}
		c.rerun = false
		c.running = false

		status := StatusSuccess
		if err != nil || !result.Clean() {
			status = StatusError
		}
		c.status = status
		c.lastResult = result
		c.mu.Unlock()

		c.publish(Event{Status: status, Result: result})
		c.logger.Info("sync cycle finished",
			"status", status,
			"attempted", result.Attempted,
			"synced", result.Synced,
			"conflicts", result.Conflicts,
			"failed", result.Failed,
			"deferred", result.Deferred)

		return result, err
	}
}

// cycle drains the queue batch by batch. A transient failure stops the
// drain after the current batch: the network is presumed gone and the
// requeued entries are not ready anyway.
func (c *Coordinator) cycle(ctx context.Context) (*Result, error) {
	result := &Result{StartedAt: time.Now()}

	for {
		batch, err := c.outbox.PeekBatch(ctx, c.cfg.BatchSize, time.Now())
		if err != nil {
			result.FinishedAt = time.Now()
			return result, err
		}
		if len(batch) == 0 {
			result.FinishedAt = time.Now()
			return result, nil
		}

		deferredBefore := result.Deferred
		for _, entry := range batch {
			c.process(ctx, entry, result)
		}
		if result.Deferred > deferredBefore {
			result.FinishedAt = time.Now()
			return result, nil
		}
	}
}

// process pushes one entry to the remote and settles it per the error
// classification
func (c *Coordinator) process(ctx context.Context, entry *models.OutboxEntry, result *Result) {
	result.Attempted++

	c.markEntity(ctx, entry, models.OutcomePending)

	err := c.adapter.Apply(ctx, entry)

	switch {
	case err == nil:
		c.markEntity(ctx, entry, models.OutcomeSynced)
		c.removeEntry(ctx, entry)
		result.Synced++

	case remote.IsPermanent(err):
		outcome := models.OutcomeFailed
		var re *remote.Error
		if errors.As(err, &re) && re.Code == api.CodeConflict {
			outcome = models.OutcomeConflict
			result.Conflicts++
		} else {
			result.Failed++
		}
		c.logger.Warn("entry rejected permanently",
			"entry_id", entry.EntryID,
			"entity_id", entry.EntityID,
			"outcome", outcome,
			"error", err)
		c.markEntity(ctx, entry, outcome)
		c.removeEntry(ctx, entry)

	default:
		_, retained, reqErr := c.outbox.Requeue(ctx, entry.EntryID, err.Error(), time.Now())
		if reqErr != nil {
			c.logger.Error("failed to requeue entry",
				"entry_id", entry.EntryID, "error", reqErr)
			result.Failed++
			return
		}
		if !retained {
			c.logger.Warn("entry exhausted its retry budget",
				"entry_id", entry.EntryID,
				"entity_id", entry.EntityID,
				"attempts", entry.AttemptCount+1)
			c.markEntity(ctx, entry, models.OutcomeFailed)
			result.Failed++
			return
		}
		c.logger.Info("transient failure, entry deferred",
			"entry_id", entry.EntryID,
			"entity_id", entry.EntityID,
			"error", err)
		result.Deferred++
	}
}

// markEntity reports an outcome back to the entity store. The store
// discards stale versions itself; errors are logged, not fatal to the
// cycle.
func (c *Coordinator) markEntity(ctx context.Context, entry *models.OutboxEntry, outcome models.SyncOutcome) {
	if err := c.entities.MarkSyncResult(ctx, entry.EntityID, entry.Version, outcome); err != nil {
		c.logger.Warn("failed to mark sync result",
			"entity_id", entry.EntityID, "outcome", outcome, "error", err)
	}
}

// removeEntry settles an entry out of the queue. When a newer write
// coalesced into the entry mid-flight the removal is refused; the
// entry stays queued and the next batch read inside the same cycle
// picks up the newer snapshot.
func (c *Coordinator) removeEntry(ctx context.Context, entry *models.OutboxEntry) {
	removed, err := c.outbox.Remove(ctx, entry.EntryID, entry.Version)
	if err != nil {
		c.logger.Warn("failed to remove settled entry",
			"entry_id", entry.EntryID, "error", err)
		return
	}
	if !removed {
		c.logger.Info("entry superseded mid-flight, keeping it queued",
			"entry_id", entry.EntryID,
			"entity_id", entry.EntityID)
	}
}

// publish delivers an event to every subscriber outside the lock
func (c *Coordinator) publish(event Event) {
	c.mu.Lock()
	listeners := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// loop fires the periodic trigger until the context is cancelled
func (c *Coordinator) loop(ctx context.Context) {
	defer close(c.done)

	if !c.cfg.AutoSync || c.cfg.Interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.backlogSync(ctx)
		}
	}
}

// backlogSync runs a cycle only when online with a non-empty queue
func (c *Coordinator) backlogSync(ctx context.Context) {
	if c.monitor.State() != netmon.Online {
		c.logger.Debug("skipping sync, offline")
		return
	}

	count, err := c.outbox.PendingCount(ctx)
	if err != nil {
		c.logger.Warn("failed to read backlog", "error", err)
		return
	}
	if count == 0 {
		return
	}

	if _, err := c.SyncNow(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
		c.logger.Warn("automatic sync failed", "error", err)
	}
}
