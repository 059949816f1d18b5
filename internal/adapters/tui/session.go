package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/navigation"
)

func (m *Model) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Stop, m.keys.Enter):
		return m.stopSession()
	case key.Matches(msg, m.keys.Chat):
		return m, m.openChat()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

// stopSession saves the running session and shows the report.
func (m *Model) stopSession() (tea.Model, tea.Cmd) {
	rec, err := m.recorder.Complete()
	if err != nil {
		m.status = err.Error()
		m.lastRecord = nil
	} else {
		m.lastRecord = &rec
	}
	m.dispatch(navigation.Stop)
	return m, m.chart.restart()
}

func (m *Model) viewSession() string {
	snap := m.recorder.Snapshot()
	activity := snap.SelectedActivity
	color := lipgloss.Color(m.theme.ActivityColor(activity))

	header := activityStyle(m.theme, activity).Render(activity.Icon() + "  " + string(activity))
	status := m.styles.muted.Render(domain.GetStatusLabel(snap))
	clock := renderClock(domain.FormatTime(snap.ElapsedSeconds), color, m.width)
	// The bar fills once per minute.
	minute := m.clockBar.ViewAs(float64(snap.ElapsedSeconds%60) / 60)

	help := helpLine(m.keys.Stop, m.keys.Quit)
	if m.chat != nil {
		help += " · " + helpLine(m.keys.Chat)
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		header,
		status,
		"",
		clock,
		"",
		minute,
		"",
		m.styles.help.Render(help),
	)
}
