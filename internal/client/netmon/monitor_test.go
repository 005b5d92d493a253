package netmon

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// flippableProbe is a probe whose result tests control
type flippableProbe struct {
	online atomic.Bool
}

func (p *flippableProbe) probe(ctx context.Context) bool {
	return p.online.Load()
}

func TestPollingMonitor_InitialState(t *testing.T) {
	probe := &flippableProbe{}
	probe.online.Store(true)

	m := NewPollingMonitor(probe.probe, 5*time.Millisecond, 10*time.Millisecond, testLogger())
	m.Start(context.Background())
	defer m.Stop()

	assert.Equal(t, Online, m.State())
}

func TestPollingMonitor_DebouncedTransition(t *testing.T) {
	probe := &flippableProbe{}

	m := NewPollingMonitor(probe.probe, 2*time.Millisecond, 10*time.Millisecond, testLogger())

	var mu sync.Mutex
	var transitions []State
	m.Subscribe(func(s State) {
		mu.Lock()
		transitions = append(transitions, s)
		mu.Unlock()
	})

	m.Start(context.Background())
	defer m.Stop()

	require.Equal(t, Offline, m.State())

	probe.online.Store(true)

	require.Eventually(t, func() bool {
		return m.State() == Online
	}, time.Second, 2*time.Millisecond)

	// Stays online: no further notifications for a stable state
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, transitions, 1, "exactly one callback per offline→online transition")
	assert.Equal(t, Online, transitions[0])
}

func TestPollingMonitor_FlappingDoesNotNotify(t *testing.T) {
	probe := &flippableProbe{}

	// Debounce longer than the flap period
	m := NewPollingMonitor(probe.probe, 2*time.Millisecond, 200*time.Millisecond, testLogger())

	var notified atomic.Int32
	m.Subscribe(func(State) { notified.Add(1) })

	m.Start(context.Background())
	defer m.Stop()

	// Flap for a while, never stable for the debounce window
	for i := 0; i < 10; i++ {
		probe.online.Store(i%2 == 0)
		time.Sleep(10 * time.Millisecond)
	}

	assert.Zero(t, notified.Load())
	assert.Equal(t, Offline, m.State())
}

func TestPollingMonitor_Unsubscribe(t *testing.T) {
	probe := &flippableProbe{}

	m := NewPollingMonitor(probe.probe, 2*time.Millisecond, 5*time.Millisecond, testLogger())

	var notified atomic.Int32
	unsubscribe := m.Subscribe(func(State) { notified.Add(1) })
	unsubscribe()

	m.Start(context.Background())
	defer m.Stop()

	probe.online.Store(true)

	require.Eventually(t, func() bool {
		return m.State() == Online
	}, time.Second, 2*time.Millisecond)

	assert.Zero(t, notified.Load())
}

func TestHTTPProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	probe := HTTPProbe(server.URL + "/healthz")
	assert.True(t, probe(context.Background()))

	server.Close()
	assert.False(t, probe(context.Background()))
}
