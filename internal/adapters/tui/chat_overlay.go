package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/chatmode"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
)

// chatReplyMsg carries the outcome of a Send.
type chatReplyMsg struct {
	reply domain.ChatMessage
	err   error
}

func sendCmd(chat ChatProxy, text string, mode domain.ChatMode) tea.Cmd {
	return func() tea.Msg {
		reply, err := chat.Send(context.Background(), text, mode)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// chatOverlay is the assistant panel drawn over the current screen.
type chatOverlay struct {
	chat   ChatProxy
	keys   KeyMap
	theme  config.ThemeConfig
	styles styles

	mode     domain.ChatMode
	messages []domain.ChatMessage
	// pending is the prompt shown until the service echoes it back.
	pending string
	waiting bool
	errText string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	rendered map[string]string
	width    int
	height   int
}

func newChatOverlay(chat ChatProxy, theme config.ThemeConfig, keys KeyMap, width, height int) *chatOverlay {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := newInput("Ask Mind It Bot…", false)
	in.Prompt = "› "

	o := &chatOverlay{
		chat:     chat,
		keys:     keys,
		theme:    theme,
		styles:   newStyles(theme),
		mode:     chat.DefaultMode(),
		messages: chat.Messages(),
		waiting:  chat.InFlight(),
		input:    in,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
	o.resize(width, height)
	return o
}

func (o *chatOverlay) init() tea.Cmd {
	cmds := []tea.Cmd{o.input.Focus(), textinput.Blink}
	if o.waiting {
		cmds = append(cmds, o.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// resize fits the transcript to the terminal and rebuilds the markdown
// renderer for the new wrap width.
func (o *chatOverlay) resize(width, height int) {
	o.width, o.height = width, height
	o.viewport.Width = max(width-6, 20)
	o.viewport.Height = max(height-10, 3)
	o.input.Width = max(width-10, 20)

	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(o.viewport.Width-2),
	); err == nil {
		o.renderer = r
	}
	o.rendered = make(map[string]string)
	o.refresh()
}

// refresh redraws the transcript and scrolls to the newest message.
func (o *chatOverlay) refresh() {
	var b strings.Builder
	for _, msg := range o.messages {
		b.WriteString(o.renderMessage(msg))
		b.WriteString("\n\n")
	}
	if o.pending != "" && !o.echoed() {
		b.WriteString(o.renderUser(o.pending))
		b.WriteString("\n\n")
	}
	o.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
	o.viewport.GotoBottom()
}

// echoed reports whether the pending prompt already shows up in messages.
func (o *chatOverlay) echoed() bool {
	if len(o.messages) == 0 {
		return false
	}
	last := o.messages[len(o.messages)-1]
	return last.Role == domain.RoleUser && last.Text == o.pending
}

func (o *chatOverlay) renderMessage(msg domain.ChatMessage) string {
	if msg.Role == domain.RoleUser {
		return o.renderUser(msg.Text)
	}
	if cached, ok := o.rendered[msg.ID]; ok {
		return cached
	}
	out := o.styles.assistant.Render("Mind It Bot") + "\n"
	body := msg.Text
	if o.renderer != nil {
		if md, err := o.renderer.Render(msg.Text); err == nil {
			body = strings.Trim(md, "\n")
		}
	}
	out += body
	o.rendered[msg.ID] = out
	return out
}

func (o *chatOverlay) renderUser(text string) string {
	wrapped := lipgloss.NewStyle().Width(o.viewport.Width - 2).Render(text)
	return o.styles.user.Bold(true).Render("You") + "\n" + o.styles.user.Render(wrapped)
}

// nextMode cycles through the chat modes.
func (o *chatOverlay) nextMode() {
	for i, m := range domain.ValidChatModes {
		if m == o.mode {
			o.mode = domain.ValidChatModes[(i+1)%len(domain.ValidChatModes)]
			return
		}
	}
	o.mode = domain.ChatModeStandard
}

func (o *chatOverlay) update(msg tea.Msg) (*chatOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, o.keys.Enter):
			return o, o.submit()
		case key.Matches(msg, o.keys.ChatMode):
			o.nextMode()
			return o, nil
		case key.Matches(msg, o.keys.ChatClear):
			o.clear()
			return o, nil
		case key.Matches(msg, o.keys.ScrollUp, o.keys.ScrollDown):
			var cmd tea.Cmd
			o.viewport, cmd = o.viewport.Update(msg)
			return o, cmd
		}
		var cmd tea.Cmd
		o.input, cmd = o.input.Update(msg)
		return o, cmd

	case spinner.TickMsg:
		if !o.waiting {
			return o, nil
		}
		var cmd tea.Cmd
		o.spinner, cmd = o.spinner.Update(msg)
		return o, cmd
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd
}

// submit sends the input unless it is blank or a reply is outstanding.
func (o *chatOverlay) submit() tea.Cmd {
	text := strings.TrimSpace(o.input.Value())
	if text == "" || o.waiting {
		return nil
	}
	o.input.Reset()
	o.errText = ""
	o.waiting = true
	o.pending = text
	o.refresh()
	return tea.Batch(sendCmd(o.chat, text, o.mode), o.spinner.Tick)
}

// receive applies a finished Send.
func (o *chatOverlay) receive(msg chatReplyMsg) {
	o.waiting = o.chat.InFlight()
	o.pending = ""
	if msg.err != nil {
		o.errText = msg.err.Error()
	}
	o.messages = o.chat.Messages()
	o.refresh()
}

func (o *chatOverlay) clear() {
	if o.waiting {
		return
	}
	if err := o.chat.Clear(context.Background()); err != nil {
		o.errText = err.Error()
	}
	o.messages = o.chat.Messages()
	o.rendered = make(map[string]string)
	o.refresh()
}

func (o *chatOverlay) view() string {
	mode := chatmode.ForMode(o.mode, nil)
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		o.styles.title.Render(o.theme.IconChat+"  Mind It Bot"),
		"  ",
		o.styles.accent.Render("["+mode.Label()+"]"),
	)

	status := " "
	switch {
	case o.waiting:
		status = o.spinner.View() + " " + o.styles.muted.Render(mode.PendingText())
	case o.errText != "":
		status = o.styles.errorText.Render(o.errText)
	}

	help := o.styles.help.Render(helpLine(o.keys.Enter, o.keys.ChatMode, o.keys.ChatClear, o.keys.ScrollUp, o.keys.Back))
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		o.viewport.View(),
		"",
		status,
		o.input.View(),
		"",
		help,
	)
	return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, o.styles.frame.Render(body))
}
