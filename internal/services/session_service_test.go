package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/mindit-cli/internal/domain"
)

func TestSessionService_StartTickComplete(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.NoError(t, svc.Start(domain.ActivityMeditating))
	assert.Equal(t, 1, ticker.live())

	ticker.fire(0, 7)
	snap := svc.Snapshot()
	assert.Equal(t, 7, snap.ElapsedSeconds)
	assert.True(t, snap.IsRunning)

	rec, err := svc.Complete()
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityMeditating, rec.Activity)
	assert.Equal(t, 7, rec.DurationSeconds)
	assert.Equal(t, fixed, rec.Timestamp)
	assert.Equal(t, 0, ticker.live(), "tick source must be released on Complete")

	snap = svc.Snapshot()
	assert.False(t, snap.IsRunning)
	assert.Equal(t, 7, snap.ElapsedSeconds, "elapsed is kept after Complete")

	history := svc.History()
	require.Len(t, history, 1)
	assert.Equal(t, rec, history[0])
}

func TestSessionService_ZeroTicks(t *testing.T) {
	svc := NewSessionService(&manualTicker{})
	require.NoError(t, svc.Start(domain.ActivityReading))

	rec, err := svc.Complete()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.DurationSeconds)
	assert.Equal(t, domain.ActivityReading, rec.Activity)
}

func TestSessionService_StaleTicksIgnored(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)

	require.NoError(t, svc.Start(domain.ActivityGaming))
	ticker.fire(0, 3)
	_, err := svc.Complete()
	require.NoError(t, err)

	ticker.fire(0, 5)
	assert.Equal(t, 3, svc.Snapshot().ElapsedSeconds, "ticks after Complete must not count")

	require.NoError(t, svc.Start(domain.ActivityWalking))
	assert.Equal(t, 0, svc.Snapshot().ElapsedSeconds)
	ticker.fire(0, 4)
	ticker.fire(1, 2)
	assert.Equal(t, 2, svc.Snapshot().ElapsedSeconds, "ticks from the previous session must not count")
}

func TestSessionService_RestartReleasesPreviousTicker(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)

	require.NoError(t, svc.Start(domain.ActivityGaming))
	require.NoError(t, svc.Start(domain.ActivityReading))
	assert.Equal(t, 1, ticker.live())
	assert.Empty(t, svc.History(), "restarting does not record the discarded session")
}

func TestSessionService_CompleteWithoutSession(t *testing.T) {
	svc := NewSessionService(&manualTicker{})

	_, err := svc.Complete()
	assert.True(t, errors.Is(err, domain.ErrNoActiveSession))
	assert.Empty(t, svc.History())

	require.NoError(t, svc.Start(domain.ActivityBreathing))
	_, err = svc.Complete()
	require.NoError(t, err)
	_, err = svc.Complete()
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.Len(t, svc.History(), 1)
}

func TestSessionService_TickWhileStopped(t *testing.T) {
	svc := NewSessionService(&manualTicker{})
	svc.Tick()
	assert.Equal(t, 0, svc.Snapshot().ElapsedSeconds)

	require.NoError(t, svc.Start(domain.ActivityListening))
	svc.Tick()
	svc.Abandon()
	svc.Tick()
	assert.Equal(t, 1, svc.Snapshot().ElapsedSeconds)
	assert.Empty(t, svc.History())
}

func TestSessionService_Abandon(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)
	require.NoError(t, svc.Start(domain.ActivityWalking))

	svc.Abandon()
	assert.Equal(t, 0, ticker.live())
	assert.False(t, svc.Snapshot().IsRunning)
	_, err := svc.Complete()
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionService_InvalidActivity(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)
	err := svc.Start(domain.ActivityKind("Sleeping"))
	assert.ErrorIs(t, err, domain.ErrInvalidActivity)
	assert.Equal(t, 0, ticker.live())
}

func TestSessionService_HistoryNewestFirst(t *testing.T) {
	ticker := &manualTicker{}
	svc := NewSessionService(ticker)

	for i, a := range []domain.ActivityKind{domain.ActivityReading, domain.ActivityGaming, domain.ActivityWalking} {
		require.NoError(t, svc.Start(a))
		ticker.fire(i, i+1)
		_, err := svc.Complete()
		require.NoError(t, err)
	}

	h := svc.History()
	require.Len(t, h, 3)
	assert.Equal(t, domain.ActivityWalking, h[0].Activity)
	assert.Equal(t, domain.ActivityGaming, h[1].Activity)
	assert.Equal(t, domain.ActivityReading, h[2].Activity)

	h[0].DurationSeconds = 1000
	assert.Equal(t, 3, svc.History()[0].DurationSeconds, "History() must return a copy")
}

func TestSessionService_Notifier(t *testing.T) {
	n := &recordingNotifier{err: errors.New("no display")}
	svc := NewSessionService(&manualTicker{})
	svc.SetNotifier(n)

	require.NoError(t, svc.Start(domain.ActivityBreathing))
	rec, err := svc.Complete()
	require.NoError(t, err, "notifier failures must not surface")
	svc.WaitNotifications()
	delivered := n.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, rec.ID, delivered[0].ID)
}

func TestSessionService_SlowNotifierDoesNotBlockComplete(t *testing.T) {
	n := &recordingNotifier{block: make(chan struct{})}
	svc := NewSessionService(&manualTicker{})
	svc.SetNotifier(n)

	require.NoError(t, svc.Start(domain.ActivityListening))
	svc.Tick()

	done := make(chan domain.SessionRecord, 1)
	go func() {
		rec, err := svc.Complete()
		assert.NoError(t, err)
		done <- rec
	}()

	var rec domain.SessionRecord
	select {
	case rec = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Complete waited for the notifier")
	}
	assert.Equal(t, 1, rec.DurationSeconds)
	assert.Len(t, svc.History(), 1)
	assert.Empty(t, n.delivered())

	close(n.block)
	svc.WaitNotifications()
	require.Len(t, n.delivered(), 1)
	assert.Equal(t, rec.ID, n.delivered()[0].ID)
}

func TestSessionService_MCPStateProvider(t *testing.T) {
	svc := NewSessionService(&manualTicker{})
	ctx := context.Background()

	state, err := svc.StartSession(ctx, domain.ActivityReading)
	require.NoError(t, err)
	assert.True(t, state.IsSessionActive())

	svc.Tick()
	rec, err := svc.CompleteSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.DurationSeconds)

	state, err = svc.GetCurrentState(ctx)
	require.NoError(t, err)
	last, ok := state.LastRecord()
	require.True(t, ok)
	assert.Equal(t, rec.ID, last.ID)

	_, err = svc.CompleteSession(ctx)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}
