package domain

import (
	"fmt"
	"time"
)

// SessionRecord is the immutable summary of one completed rest session.
type SessionRecord struct {
	ID              string       `json:"id" yaml:"id"`
	Activity        ActivityKind `json:"activity" yaml:"activity"`
	DurationSeconds int          `json:"duration_seconds" yaml:"duration_seconds"`
	Timestamp       time.Time    `json:"timestamp" yaml:"timestamp"`
}

// Duration returns the recorded length as a time.Duration.
func (r SessionRecord) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

// ActiveSession is the transient state of the single in-flight session.
type ActiveSession struct {
	SelectedActivity ActivityKind
	ElapsedSeconds   int
	IsRunning        bool

	// Generation increases on every Start so that ticks issued for an
	// earlier session can be told apart from ticks for the current one.
	Generation uint64
}

// Start begins a new session for the activity and zeroes the clock.
func (s *ActiveSession) Start(activity ActivityKind) {
	s.SelectedActivity = activity
	s.ElapsedSeconds = 0
	s.IsRunning = true
	s.Generation++
}

// Tick advances the clock by one second. It reports whether the tick counted.
func (s *ActiveSession) Tick() bool {
	if !s.IsRunning {
		return false
	}
	s.ElapsedSeconds++
	return true
}

// Stop freezes the clock without producing a record.
func (s *ActiveSession) Stop() {
	s.IsRunning = false
}

// Complete freezes the clock and returns the record for the session.
// ElapsedSeconds is left untouched so the display keeps the final value.
// A session that was never started, or was already completed, yields
// ErrNoActiveSession and no record.
func (s *ActiveSession) Complete(now time.Time) (SessionRecord, error) {
	wasRunning := s.IsRunning
	s.IsRunning = false
	if s.SelectedActivity == "" || !wasRunning {
		return SessionRecord{}, ErrNoActiveSession
	}
	return SessionRecord{
		ID:              generateID(),
		Activity:        s.SelectedActivity,
		DurationSeconds: s.ElapsedSeconds,
		Timestamp:       now,
	}, nil
}

// HasActivity reports whether an activity was ever selected.
func (s *ActiveSession) HasActivity() bool {
	return s.SelectedActivity != ""
}

// SessionHistory is the append-only, newest-first list of completed sessions.
type SessionHistory struct {
	records []SessionRecord
}

// Prepend adds a record in front of all earlier ones.
// Earlier records are copied, never modified in place.
func (h *SessionHistory) Prepend(r SessionRecord) {
	next := make([]SessionRecord, 0, len(h.records)+1)
	next = append(next, r)
	next = append(next, h.records...)
	h.records = next
}

// Records returns a copy of the history, newest first.
func (h *SessionHistory) Records() []SessionRecord {
	out := make([]SessionRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of recorded sessions.
func (h *SessionHistory) Len() int {
	return len(h.records)
}

// FormatTime renders seconds as MM:SS. Minutes are not capped at 59.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
