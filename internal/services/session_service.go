// Package services implements the application use cases on top of the
// domain model and the ports.
package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

// SessionService owns the active session, the tick source driving it and
// the in-memory history of completed sessions.
type SessionService struct {
	mu       sync.Mutex
	active   domain.ActiveSession
	history  domain.SessionHistory
	ticker   ports.Ticker
	stopTick func()
	notifier ports.Notifier
	notifies sync.WaitGroup
	now      func() time.Time
}

// Ensure SessionService implements ports.MCPStateProvider.
var _ ports.MCPStateProvider = (*SessionService)(nil)

// NewSessionService creates a new session service driven by ticker.
func NewSessionService(ticker ports.Ticker) *SessionService {
	return &SessionService{
		ticker: ticker,
		now:    time.Now,
	}
}

// SetNotifier sets the hook called after each completed session.
func (s *SessionService) SetNotifier(n ports.Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Start begins timing a new session for the activity. Any running session
// is discarded without a record.
func (s *SessionService) Start(activity domain.ActivityKind) error {
	if !activity.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidActivity, activity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseTicker()
	s.active.Start(activity)

	gen := s.active.Generation
	if s.ticker != nil {
		s.stopTick = s.ticker.Start(func() { s.tick(gen) })
	}
	return nil
}

// Tick advances the running session by one second.
func (s *SessionService) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.Tick()
}

// tick is the tick-source callback; ticks from an earlier session are dropped.
func (s *SessionService) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.active.Generation {
		return
	}
	s.active.Tick()
}

// Complete stops the clock and records the session. It returns
// domain.ErrNoActiveSession when no session is running.
func (s *SessionService) Complete() (domain.SessionRecord, error) {
	s.mu.Lock()
	s.releaseTicker()
	rec, err := s.active.Complete(s.now())
	if err != nil {
		s.mu.Unlock()
		return domain.SessionRecord{}, err
	}
	s.history.Prepend(rec)
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		s.notifies.Add(1)
		go func() {
			defer s.notifies.Done()
			if err := notifier.NotifySessionComplete(rec); err != nil {
				log.Printf("[session] completion notification failed: %v", err)
			}
		}()
	}
	return rec, nil
}

// WaitNotifications blocks until every completion notification sent so far
// has been delivered or has failed.
func (s *SessionService) WaitNotifications() {
	s.notifies.Wait()
}

// Abandon stops the clock without recording anything.
func (s *SessionService) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseTicker()
	s.active.Stop()
}

// Snapshot returns a copy of the active session.
func (s *SessionService) Snapshot() domain.ActiveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// History returns the completed sessions, newest first.
func (s *SessionService) History() []domain.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Records()
}

// State returns a snapshot of the active session and the history.
func (s *SessionService) State() domain.CurrentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CurrentState{
		Active:  s.active,
		History: s.history.Records(),
	}
}

// releaseTicker stops the tick source. Callers must hold s.mu.
func (s *SessionService) releaseTicker() {
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *SessionService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	state := s.State()
	return &state, nil
}

// StartSession implements ports.MCPStateProvider.
func (s *SessionService) StartSession(ctx context.Context, activity domain.ActivityKind) (*domain.CurrentState, error) {
	if err := s.Start(activity); err != nil {
		return nil, err
	}
	state := s.State()
	return &state, nil
}

// CompleteSession implements ports.MCPStateProvider.
func (s *SessionService) CompleteSession(ctx context.Context) (*domain.SessionRecord, error) {
	rec, err := s.Complete()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
