package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{65, "01:05"},
		{3599, "59:59"},
		{3600, "60:00"},
		{3661, "61:01"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatTime(tt.seconds); got != tt.want {
				t.Errorf("FormatTime(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestActiveSession_Start(t *testing.T) {
	var s ActiveSession
	s.ElapsedSeconds = 42

	s.Start(ActivityReading)

	if s.SelectedActivity != ActivityReading {
		t.Errorf("SelectedActivity = %v, want %v", s.SelectedActivity, ActivityReading)
	}
	if s.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %d, want 0", s.ElapsedSeconds)
	}
	if !s.IsRunning {
		t.Error("IsRunning should be true after Start")
	}
	if s.Generation != 1 {
		t.Errorf("Generation = %d, want 1", s.Generation)
	}
}

func TestActiveSession_TickOnlyWhileRunning(t *testing.T) {
	var s ActiveSession

	if s.Tick() {
		t.Error("Tick() before Start should not count")
	}
	if s.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %d, want 0", s.ElapsedSeconds)
	}

	s.Start(ActivityGaming)
	for i := 0; i < 3; i++ {
		if !s.Tick() {
			t.Fatal("Tick() while running should count")
		}
	}

	s.Stop()
	s.Tick()
	if s.ElapsedSeconds != 3 {
		t.Errorf("ElapsedSeconds after stop = %d, want 3", s.ElapsedSeconds)
	}
}

func TestActiveSession_Complete(t *testing.T) {
	t.Run("zero ticks", func(t *testing.T) {
		var s ActiveSession
		s.Start(ActivityBreathing)

		now := time.Now()
		rec, err := s.Complete(now)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if rec.DurationSeconds != 0 {
			t.Errorf("DurationSeconds = %d, want 0", rec.DurationSeconds)
		}
		if rec.Activity != ActivityBreathing {
			t.Errorf("Activity = %v, want %v", rec.Activity, ActivityBreathing)
		}
		if !rec.Timestamp.Equal(now) {
			t.Errorf("Timestamp = %v, want %v", rec.Timestamp, now)
		}
		if rec.ID == "" {
			t.Error("record ID is empty")
		}
	})

	t.Run("n ticks", func(t *testing.T) {
		for _, n := range []int{1, 7, 125} {
			var s ActiveSession
			s.Start(ActivityWalking)
			for i := 0; i < n; i++ {
				s.Tick()
			}
			rec, err := s.Complete(time.Now())
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if rec.DurationSeconds != n {
				t.Errorf("DurationSeconds = %d, want %d", rec.DurationSeconds, n)
			}
			if s.ElapsedSeconds != n {
				t.Errorf("ElapsedSeconds should stay frozen at %d, got %d", n, s.ElapsedSeconds)
			}
		}
	})

	t.Run("never started", func(t *testing.T) {
		var s ActiveSession
		_, err := s.Complete(time.Now())
		if !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("Complete() error = %v, want ErrNoActiveSession", err)
		}
	})

	t.Run("already completed", func(t *testing.T) {
		var s ActiveSession
		s.Start(ActivityReading)
		if _, err := s.Complete(time.Now()); err != nil {
			t.Fatalf("first Complete() error = %v", err)
		}
		if _, err := s.Complete(time.Now()); !errors.Is(err, ErrNoActiveSession) {
			t.Errorf("second Complete() error = %v, want ErrNoActiveSession", err)
		}
	})
}

func TestSessionHistory_Prepend(t *testing.T) {
	var h SessionHistory
	first := SessionRecord{ID: "a", Activity: ActivityReading, DurationSeconds: 10}
	second := SessionRecord{ID: "b", Activity: ActivityGaming, DurationSeconds: 5}

	h.Prepend(first)
	before := h.Records()
	h.Prepend(second)

	got := h.Records()
	if len(got) != 2 {
		t.Fatalf("Len = %d, want 2", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("order = [%s %s], want [b a]", got[0].ID, got[1].ID)
	}
	if before[0] != first {
		t.Error("earlier snapshot was mutated by Prepend")
	}

	got[0].DurationSeconds = 999
	if h.Records()[0].DurationSeconds != 5 {
		t.Error("Records() should return a copy")
	}
}
