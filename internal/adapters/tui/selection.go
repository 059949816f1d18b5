package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/navigation"
)

// selectionState is the activity list with its optional fuzzy filter.
type selectionState struct {
	all       []domain.ActivityInfo
	visible   []domain.ActivityInfo
	cursor    int
	filter    textinput.Model
	filtering bool
}

func newSelectionState() selectionState {
	all := domain.Activities()
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "/ "
	filter.CharLimit = 20
	return selectionState{all: all, visible: all, filter: filter}
}

// applyFilter narrows the visible activities to fuzzy matches of the query.
func (s *selectionState) applyFilter() {
	query := strings.TrimSpace(s.filter.Value())
	if query == "" {
		s.visible = s.all
	} else {
		names := make([]string, len(s.all))
		for i, a := range s.all {
			names[i] = string(a.Kind)
		}
		matches := fuzzy.Find(query, names)
		s.visible = make([]domain.ActivityInfo, 0, len(matches))
		for _, match := range matches {
			s.visible = append(s.visible, s.all[match.Index])
		}
	}
	if s.cursor >= len(s.visible) {
		s.cursor = max(len(s.visible)-1, 0)
	}
}

func (s *selectionState) clearFilter() {
	s.filtering = false
	s.filter.Reset()
	s.filter.Blur()
	s.applyFilter()
}

// current returns the highlighted activity.
func (s *selectionState) current() (domain.ActivityKind, bool) {
	if len(s.visible) == 0 {
		return "", false
	}
	return s.visible[s.cursor].Kind, true
}

func (m *Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.selection
	if s.filtering {
		switch {
		case key.Matches(msg, m.keys.Back):
			s.clearFilter()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			s.filtering = false
			s.filter.Blur()
			return m.startSelected()
		case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
			// Arrow keys still move through the matches while typing.
		default:
			var cmd tea.Cmd
			s.filter, cmd = s.filter.Update(msg)
			s.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		return m.startSelected()
	case key.Matches(msg, m.keys.Filter):
		s.filtering = true
		return m, s.filter.Focus()
	case key.Matches(msg, m.keys.Back):
		s.clearFilter()
	case key.Matches(msg, m.keys.Report):
		if m.dispatch(navigation.ViewReport) {
			return m, m.chart.restart()
		}
	case key.Matches(msg, m.keys.Chat):
		return m, m.openChat()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

// startSelected starts a session for the highlighted activity and moves to
// the Session screen.
func (m *Model) startSelected() (tea.Model, tea.Cmd) {
	activity, ok := m.selection.current()
	if !ok {
		return m, nil
	}
	if err := m.recorder.Start(activity); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.selection.clearFilter()
	m.dispatch(navigation.SelectActivity)
	return m, m.startTicking()
}

func (m *Model) viewSelection() string {
	s := m.selection
	rows := []string{m.styles.title.Render(m.greeting()), ""}

	if len(s.visible) == 0 {
		rows = append(rows, m.styles.muted.Render("No activity matches."))
	}
	for i, a := range s.visible {
		label := fmt.Sprintf("%s  %s", a.Icon, a.Kind)
		if i == s.cursor {
			rows = append(rows, activityStyle(m.theme, a.Kind).Render("› "+label))
			continue
		}
		rows = append(rows, m.styles.muted.Render("  "+label))
	}

	rows = append(rows, "")
	if s.filtering || s.filter.Value() != "" {
		rows = append(rows, s.filter.View(), "")
	}

	help := helpLine(m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Filter, m.keys.Report)
	if m.chat != nil {
		help += " · " + helpLine(m.keys.Chat)
	}
	rows = append(rows, m.styles.help.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
