package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/mindit-cli/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	cursor  int
	aborted bool
	keys    KeyMap
	styles  styles
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.items)
	case key.Matches(keyMsg, m.keys.Enter):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Back, m.keys.ForceQuit):
		m.aborted = true
		return m, tea.Quit
	default:
		// Number keys jump straight to an item.
		if s := keyMsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.items) {
				m.cursor = i
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + m.styles.title.Render(m.title) + "\n\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%d. %-12s %s", i+1, item.Label, item.Desc)
		if i == m.cursor {
			b.WriteString("  " + m.styles.selected.Render("› "+line) + "\n")
			continue
		}
		b.WriteString("    " + m.styles.muted.Render(line) + "\n")
	}
	if m.footer != "" {
		b.WriteString("\n  " + m.styles.help.Render(m.footer) + "\n")
	}
	b.WriteString("\n  " + m.styles.help.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back)) + "\n")
	return b.String()
}

// RunPicker launches an interactive picker starting on initial and returns
// the selected index.
func RunPicker(title string, items []PickerItem, initial int, footer string, theme *config.ThemeConfig) PickerResult {
	if len(items) == 0 {
		return PickerResult{Aborted: true}
	}
	if initial < 0 || initial >= len(items) {
		initial = 0
	}
	m := pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		cursor: initial,
		keys:   DefaultKeyMap(),
		styles: newStyles(resolveTheme(theme)),
	}

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}
	final := result.(pickerModel)
	if final.aborted {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	keys    KeyMap
	styles  styles
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Enter):
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Back, m.keys.ForceQuit):
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	return "\n  " + m.styles.title.Render(m.title) + " " + m.input.View() +
		"\n\n  " + m.styles.help.Render(helpLine(m.keys.Enter, m.keys.Back)) + "\n"
}

// RunTextPrompt launches a single-line text prompt. The value is trimmed.
func RunTextPrompt(title string, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	m := textPromptModel{
		title:  title,
		input:  newInput(placeholder, false),
		keys:   DefaultKeyMap(),
		styles: newStyles(resolveTheme(theme)),
	}
	m.input.Focus()

	result, err := tea.NewProgram(m).Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}
	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}

// newInput builds a text input with the shared limits.
func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.Width = 50
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}
