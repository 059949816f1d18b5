package domain

// CurrentState is a read-only snapshot of the application state, handed to
// views and tools so they never touch the recorder's internals.
type CurrentState struct {
	Active  ActiveSession
	History []SessionRecord
}

// IsSessionActive returns true while the session clock is running.
func (cs *CurrentState) IsSessionActive() bool {
	return cs.Active.IsRunning
}

// LastRecord returns the most recently completed session, if any.
func (cs *CurrentState) LastRecord() (SessionRecord, bool) {
	if len(cs.History) == 0 {
		return SessionRecord{}, false
	}
	return cs.History[0], true
}

// GetStatusLabel returns a human-readable label for the session clock.
func GetStatusLabel(s ActiveSession) string {
	switch {
	case s.IsRunning:
		return "Running"
	case s.HasActivity():
		return "Stopped"
	default:
		return "Idle"
	}
}
