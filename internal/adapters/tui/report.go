package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/navigation"
	"github.com/xvierd/mindit-cli/internal/report"
)

// recentLimit is how many past sessions the report lists.
const recentLimit = 5

// exportDoneMsg reports the outcome of an export.
type exportDoneMsg struct {
	path string
	err  error
}

func (m *Model) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back, m.keys.Enter):
		m.dispatch(navigation.Back)
	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.exportDir, m.recorder.History())
	case key.Matches(msg, m.keys.Chat):
		return m, m.openChat()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

// exportCmd writes the session history as JSON into dir.
func exportCmd(dir string, history []domain.SessionRecord) tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to create export directory: %w", err)}
		}
		path := filepath.Join(dir, "mindit-report-"+now.Format("20060102-150405")+".json")
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("failed to create export file: %w", err)}
		}
		defer f.Close()

		if err := report.Export(f, report.NewSnapshot(history, now), report.FormatJSON); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m *Model) viewReport() string {
	history := m.recorder.History()
	summary := report.Summarize(history)

	title := m.styles.title.Render(m.theme.IconReport + "  Your wellness report")
	total := m.styles.accent.Render("Total time: " + summary.TotalTime)
	count := m.styles.muted.Render(fmt.Sprintf("%d sessions", summary.SessionCount))

	chart := report.RenderChart(summary, report.ChartOptions{
		Width:      max(min(m.width-30, 40), 10),
		Progress:   m.chart.pos,
		ColorFor:   m.theme.ActivityColor,
		LabelStyle: m.styles.muted,
	})

	rows := []string{title, "", total, count, "", chart}

	if m.lastRecord != nil {
		rows = append(rows, "", m.styles.accent.Render(fmt.Sprintf("Nice! %s for %s.",
			m.lastRecord.Activity, domain.FormatTime(m.lastRecord.DurationSeconds))))
	}

	if len(history) > 0 {
		rows = append(rows, "", m.styles.title.Render("Recent"))
		for i, rec := range history {
			if i == recentLimit {
				break
			}
			rows = append(rows, m.styles.muted.Render(fmt.Sprintf("%s  %-11s %s",
				rec.Timestamp.Format("Jan 2 15:04"), rec.Activity, domain.FormatTime(rec.DurationSeconds))))
		}
	}

	help := helpLine(m.keys.Back, m.keys.Export)
	if m.chat != nil {
		help += " · " + helpLine(m.keys.Chat)
	}
	rows = append(rows, "", m.styles.help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
