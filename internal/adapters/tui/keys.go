package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard bindings for the TUI.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Back       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Login      key.Binding
	Register   key.Binding
	Filter     key.Binding
	Report     key.Binding
	Stop       key.Binding
	Export     key.Binding
	Chat       key.Binding
	ChatMode   key.Binding
	ChatClear  key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	AnswerYes  key.Binding
	AnswerMay  key.Binding
	AnswerNo   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Login: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "register"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Report: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "report"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "stop & save"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "assistant"),
		),
		ChatMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		ChatClear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear chat"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		AnswerYes: key.NewBinding(
			key.WithKeys("y", "1"),
			key.WithHelp("y", "yes"),
		),
		AnswerMay: key.NewBinding(
			key.WithKeys("m", "2"),
			key.WithHelp("m", "maybe"),
		),
		AnswerNo: key.NewBinding(
			key.WithKeys("n", "3"),
			key.WithHelp("n", "no"),
		),
	}
}

// helpLine renders bindings as "key action · key action".
func helpLine(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += " · "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
