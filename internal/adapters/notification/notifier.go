// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
	beep func() error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:  cfg,
		send: func(title, message string) error { return beeep.Notify(title, message, "") },
		beep: func() error { return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration) },
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	if err := n.send(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if n.cfg.Sound {
		if err := n.beep(); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
	}
	return nil
}

// NotifySessionComplete implements ports.Notifier.
func (n *Notifier) NotifySessionComplete(record domain.SessionRecord) error {
	title := fmt.Sprintf("%s %s complete", record.Activity.Icon(), record.Activity)
	message := fmt.Sprintf("Nice! You took %s for yourself.", domain.FormatTime(record.DurationSeconds))
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
