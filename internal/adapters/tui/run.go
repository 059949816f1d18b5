package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen app and blocks until the user quits. A
// session still running on exit is discarded.
func Run(opts Options) error {
	if opts.Recorder == nil {
		return fmt.Errorf("tui: a session recorder is required")
	}
	m := New(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	opts.Recorder.Abandon()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
