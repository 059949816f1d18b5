package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/navigation"
)

// SessionRecorder is the session timer the TUI drives.
type SessionRecorder interface {
	Start(activity domain.ActivityKind) error
	Complete() (domain.SessionRecord, error)
	Abandon()
	Snapshot() domain.ActiveSession
	History() []domain.SessionRecord
}

// ChatProxy is the assistant the chat overlay talks to.
type ChatProxy interface {
	Send(ctx context.Context, text string, mode domain.ChatMode) (domain.ChatMessage, error)
	Messages() []domain.ChatMessage
	Clear(ctx context.Context) error
	InFlight() bool
	DefaultMode() domain.ChatMode
}

// Options configures the TUI.
type Options struct {
	Recorder SessionRecorder
	// Chat may be nil, which hides the assistant.
	Chat  ChatProxy
	Theme *config.ThemeConfig
	// ExportDir is where the report screen writes exports.
	ExportDir string
}

// tickMsg redraws the running session clock.
type tickMsg time.Time

// chartFrameMsg advances the report chart animation.
type chartFrameMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startTicking schedules the clock redraw unless a tick is already pending.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func chartFrameCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(time.Time) tea.Msg {
		return chartFrameMsg{}
	})
}

// Model is the root bubbletea model. It owns the navigator and routes input
// to the current screen, or to the chat overlay while it is open.
type Model struct {
	nav      *navigation.Navigator
	recorder SessionRecorder
	chat     ChatProxy
	keys     KeyMap
	theme    config.ThemeConfig
	styles   styles

	width  int
	height int

	onboarding *onboarding
	selection  selectionState
	clockBar   progress.Model
	// ticking is set while a clock redraw tick is scheduled.
	ticking bool

	chart      chartAnimation
	lastRecord *domain.SessionRecord
	exportDir  string

	overlay *chatOverlay

	status   string
	notice   string
	quitting bool
}

// chartAnimation springs the report chart from empty to full length.
type chartAnimation struct {
	spring   harmonica.Spring
	pos      float64
	velocity float64
	running  bool
}

func newChartAnimation() chartAnimation {
	return chartAnimation{spring: harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.5)}
}

// restart rewinds the chart and returns the first frame command.
func (c *chartAnimation) restart() tea.Cmd {
	c.pos, c.velocity, c.running = 0, 0, true
	return chartFrameCmd()
}

// step advances one frame and reports whether the animation is still moving.
func (c *chartAnimation) step() bool {
	c.pos, c.velocity = c.spring.Update(c.pos, c.velocity, 1.0)
	if abs(c.pos-1) < 0.001 && abs(c.velocity) < 0.001 {
		c.pos, c.velocity, c.running = 1, 0, false
	}
	return c.running
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// New creates the root model on the Landing screen.
func New(opts Options) *Model {
	theme := resolveTheme(opts.Theme)
	m := &Model{
		nav:       navigation.New(),
		recorder:  opts.Recorder,
		chat:      opts.Chat,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    newStyles(theme),
		width:     80,
		height:    24,
		selection: newSelectionState(),
		clockBar: progress.New(
			progress.WithGradient(theme.GradientStart, theme.GradientEnd),
			progress.WithoutPercentage(),
		),
		chart:     newChartAnimation(),
		exportDir: opts.ExportDir,
	}
	m.chart.pos = 1
	m.onboarding = newOnboarding()
	m.nav.SetGuard(navigation.Login, func() bool { return m.onboarding.loginForm().IsComplete() })
	m.nav.SetGuard(navigation.StressAssessment, func() bool { return m.onboarding.assessment.IsComplete() })
	m.nav.SetGuard(navigation.Registration, func() bool { return m.onboarding.registrationForm().IsComplete() })
	return m
}

// Screen returns the screen being shown.
func (m *Model) Screen() navigation.Screen {
	return m.nav.Current()
}

// ChatOpen reports whether the assistant overlay is shown.
func (m *Model) ChatOpen() bool {
	return m.overlay != nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clockBar.Width = max(min(msg.Width-8, 48), 10)
		if m.overlay != nil {
			m.overlay.resize(m.width, m.height)
		}
		return m, nil

	case tickMsg:
		if m.nav.Current() == navigation.Session {
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil

	case chartFrameMsg:
		if m.chart.running && m.chart.step() {
			return m, chartFrameCmd()
		}
		return m, nil

	case chatReplyMsg, exportDoneMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		if m.overlay != nil {
			return m.updateOverlay(msg)
		}
		m.status, m.notice = "", ""
		return m.updateScreen(msg)
	}

	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.update(msg)
		return m, cmd
	}
	return m.updateInputs(msg)
}

func (m *Model) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case navigation.Landing:
		return m.updateLanding(msg)
	case navigation.Login:
		return m.updateLogin(msg)
	case navigation.StressAssessment:
		return m.updateAssessment(msg)
	case navigation.JournalistIntro:
		return m.updateIntro(msg)
	case navigation.Registration:
		return m.updateRegistration(msg)
	case navigation.Selection:
		return m.updateSelection(msg)
	case navigation.Session:
		return m.updateSession(msg)
	case navigation.Report:
		return m.updateReport(msg)
	}
	return m, nil
}

// updateInputs forwards non-key messages, such as cursor blinks, to the
// focused text input.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case navigation.Login, navigation.Registration:
		return m, m.onboarding.updateFocused(m.nav.Current(), msg)
	case navigation.Selection:
		var cmd tea.Cmd
		m.selection.filter, cmd = m.selection.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch moves the navigator and reports a rejected Submit on the status
// line.
func (m *Model) dispatch(action navigation.Action) bool {
	if _, err := m.nav.Dispatch(action); err != nil {
		if errors.Is(err, domain.ErrIncompleteForm) {
			m.status = "Please complete every field first."
		}
		return false
	}
	return true
}

// openChat shows the assistant overlay when the current screen allows it.
func (m *Model) openChat() tea.Cmd {
	if m.chat == nil || !navigation.ChatAvailable(m.nav.Current()) {
		return nil
	}
	m.overlay = newChatOverlay(m.chat, m.theme, m.keys, m.width, m.height)
	return m.overlay.init()
}

// quit abandons any running session and exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.Abandon()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.overlay != nil {
		return m.overlay.view()
	}

	var body string
	switch m.nav.Current() {
	case navigation.Landing:
		body = m.viewLanding()
	case navigation.Login:
		body = m.viewLogin()
	case navigation.StressAssessment:
		body = m.viewAssessment()
	case navigation.JournalistIntro:
		body = m.viewIntro()
	case navigation.Registration:
		body = m.viewRegistration()
	case navigation.Selection:
		body = m.viewSelection()
	case navigation.Session:
		body = m.viewSession()
	case navigation.Report:
		body = m.viewReport()
	}

	switch {
	case m.status != "":
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", m.styles.errorText.Render(m.status))
	case m.notice != "":
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", m.styles.accent.Render(m.notice))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.overlay = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.overlay, cmd = m.overlay.update(msg)
	return m, cmd
}

// handleResult applies the outcome of an asynchronous command.
func (m *Model) handleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if m.overlay != nil {
			m.overlay.receive(msg)
		}
	case exportDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.notice = "Report saved to " + msg.path
		}
	}
	return m, nil
}
