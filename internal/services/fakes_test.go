package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xvierd/mindit-cli/internal/adapters/storage"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { _ = store.Close() }
}

// manualTicker hands out the registered callbacks so tests can fire ticks,
// including ticks for sources that were already stopped.
type manualTicker struct {
	mu      sync.Mutex
	fns     []func()
	stopped []bool
}

func (m *manualTicker) Start(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := len(m.fns)
	m.fns = append(m.fns, fn)
	m.stopped = append(m.stopped, false)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopped[idx] = true
	}
}

// fire delivers n ticks to the i-th registered source regardless of
// whether it was stopped.
func (m *manualTicker) fire(i, n int) {
	m.mu.Lock()
	fn := m.fns[i]
	m.mu.Unlock()
	for j := 0; j < n; j++ {
		fn()
	}
}

func (m *manualTicker) live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.stopped {
		if !s {
			n++
		}
	}
	return n
}

type recordingNotifier struct {
	mu      sync.Mutex
	records []domain.SessionRecord
	err     error
	block   chan struct{}
}

func (r *recordingNotifier) NotifySessionComplete(rec domain.SessionRecord) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return r.err
}

func (r *recordingNotifier) delivered() []domain.SessionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SessionRecord(nil), r.records...)
}

type fakeModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []ports.GenerateRequest
	block    chan struct{}
}

func (f *fakeModel) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeModel) lastRequest() ports.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

var errNetwork = errors.New("connection refused")
