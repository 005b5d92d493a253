// Package netmon observes connectivity transitions. It is a pure
// observer: no retry logic lives here.
package netmon

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// State represents the connectivity state
type State int

const (
	Offline State = iota
	Online
)

// String returns the state name
func (s State) String() string {
	if s == Online {
		return "online"
	}
	return "offline"
}

//go:generate moq -out monitor_mock.go . Monitor

// Monitor exposes the current connectivity state and a
// change-notification stream
type Monitor interface {
	// State returns the current debounced connectivity state
	State() State

	// Subscribe registers a callback fired once per state transition.
	// The returned function unsubscribes.
	Subscribe(fn func(State)) (unsubscribe func())
}

// Probe reports raw connectivity right now
type Probe func(ctx context.Context) bool

// HTTPProbe returns a probe that considers the network online when the
// url answers any HTTP status
func HTTPProbe(url string) Probe {
	client := &http.Client{Timeout: 3 * time.Second}
	return func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}
}

// PollingMonitor polls a probe on an interval and debounces flapping:
// a raw state change is published only after it stayed stable for the
// debounce window, so one offline→online transition fires exactly one
// notification.
type PollingMonitor struct {
	logger   *slog.Logger
	probe    Probe
	subs     map[int]func(State)
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
	debounce time.Duration

	mu             sync.Mutex
	state          State
	candidate      State
	candidateSince time.Time
	nextSubID      int
}

// NewPollingMonitor creates a monitor around the probe
func NewPollingMonitor(probe Probe, interval, debounce time.Duration, logger *slog.Logger) *PollingMonitor {
	return &PollingMonitor{
		probe:    probe,
		interval: interval,
		debounce: debounce,
		logger:   logger,
		subs:     make(map[int]func(State)),
	}
}

// Start begins polling. The initial state is probed synchronously and
// published without notifying subscribers.
func (m *PollingMonitor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	initial := Offline
	if m.probe(runCtx) {
		initial = Online
	}

	m.mu.Lock()
	m.state = initial
	m.candidate = initial
	m.candidateSince = time.Now()
	m.mu.Unlock()

	m.logger.Debug("network monitor started", "state", initial)

	go m.loop(runCtx)
}

// Stop halts polling and waits for the poll loop to exit
func (m *PollingMonitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}

// State returns the current debounced connectivity state
func (m *PollingMonitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers a callback fired once per debounced transition
func (m *PollingMonitor) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// loop polls the probe until the context is cancelled
func (m *PollingMonitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.observe(ctx, time.Now())
		}
	}
}

// observe folds one raw probe result into the debounced state
func (m *PollingMonitor) observe(ctx context.Context, now time.Time) {
	raw := Offline
	if m.probe(ctx) {
		raw = Online
	}

	m.mu.Lock()

	if raw != m.candidate {
		// Raw state changed: restart the stability window
		m.candidate = raw
		m.candidateSince = now
		m.mu.Unlock()
		return
	}

	if raw == m.state || now.Sub(m.candidateSince) < m.debounce {
		m.mu.Unlock()
		return
	}

	// Stable long enough: publish the transition
	m.state = raw
	listeners := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	m.logger.Info("connectivity changed", "state", raw)

	for _, fn := range listeners {
		fn(raw)
	}
}
