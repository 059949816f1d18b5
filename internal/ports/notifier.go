package ports

import "github.com/xvierd/mindit-cli/internal/domain"

// Notifier announces finished sessions outside the application.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// NotifySessionComplete reports a completed session.
	NotifySessionComplete(record domain.SessionRecord) error
}
