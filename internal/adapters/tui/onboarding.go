package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/navigation"
)

// Field indexes of the onboarding forms.
const (
	loginEmail = iota
	loginPassword
)

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
)

// onboarding holds the cosmetic forms shown before activity selection.
type onboarding struct {
	login         []textinput.Model
	loginFocus    int
	register      []textinput.Model
	registerFocus int

	assessment     *domain.Assessment
	questionCursor int

	profile *domain.Profile
}

func newOnboarding() *onboarding {
	o := &onboarding{
		login: []textinput.Model{
			newInput("you@example.com", false),
			newInput("password", true),
		},
		register: []textinput.Model{
			newInput("Full name", false),
			newInput("you@example.com", false),
			newInput("password", true),
			newInput("confirm password", true),
		},
		assessment: domain.NewAssessment(),
	}
	o.login[loginEmail].Focus()
	o.register[regName].Focus()
	return o
}

func (o *onboarding) loginForm() domain.LoginForm {
	return domain.LoginForm{
		Email:    o.login[loginEmail].Value(),
		Password: o.login[loginPassword].Value(),
	}
}

func (o *onboarding) registrationForm() domain.RegistrationForm {
	return domain.RegistrationForm{
		Name:            o.register[regName].Value(),
		Email:           o.register[regEmail].Value(),
		Password:        o.register[regPassword].Value(),
		ConfirmPassword: o.register[regConfirm].Value(),
	}
}

// fields returns the inputs and focus index of a form screen.
func (o *onboarding) fields(s navigation.Screen) ([]textinput.Model, *int) {
	if s == navigation.Login {
		return o.login, &o.loginFocus
	}
	return o.register, &o.registerFocus
}

// moveFocus shifts focus by delta, wrapping around.
func (o *onboarding) moveFocus(s navigation.Screen, delta int) tea.Cmd {
	inputs, focus := o.fields(s)
	inputs[*focus].Blur()
	*focus = (*focus + delta + len(inputs)) % len(inputs)
	return inputs[*focus].Focus()
}

func (o *onboarding) updateFocused(s navigation.Screen, msg tea.Msg) tea.Cmd {
	inputs, focus := o.fields(s)
	var cmd tea.Cmd
	inputs[*focus], cmd = inputs[*focus].Update(msg)
	return cmd
}

// --- Landing ---

func (m *Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(navigation.Begin)
	case key.Matches(msg, m.keys.Login):
		m.dispatch(navigation.GoLogin)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m *Model) viewLanding() string {
	title := m.styles.title.Render(m.theme.IconApp + "  Mind It")
	tagline := m.styles.muted.Render("Take a few minutes for yourself.")
	blurb := m.styles.muted.Render("Pick a calming activity, time it, and see where your breaks go.")
	help := m.styles.help.Render("[enter] begin  [ctrl+l] log in  [q] quit")
	return lipgloss.JoinVertical(lipgloss.Center, title, "", tagline, blurb, "", help)
}

// --- Login ---

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(navigation.Submit)
		return m, nil
	case key.Matches(msg, m.keys.Register):
		m.dispatch(navigation.GoRegister)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		m.dispatch(navigation.Back)
		return m, nil
	case key.Matches(msg, m.keys.Tab), msg.Type == tea.KeyDown:
		return m, m.onboarding.moveFocus(navigation.Login, 1)
	case key.Matches(msg, m.keys.ShiftTab), msg.Type == tea.KeyUp:
		return m, m.onboarding.moveFocus(navigation.Login, -1)
	}
	return m, m.onboarding.updateFocused(navigation.Login, msg)
}

func (m *Model) viewLogin() string {
	o := m.onboarding
	rows := []string{
		m.styles.title.Render("Welcome back"),
		"",
		m.styles.muted.Render("Email"),
		o.login[loginEmail].View(),
		m.styles.muted.Render("Password"),
		o.login[loginPassword].View(),
		"",
		m.styles.help.Render("[enter] log in  [tab] next field  [ctrl+r] register  [esc] back"),
	}
	return m.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// --- Stress assessment ---

func (m *Model) updateAssessment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	o := m.onboarding
	last := len(domain.AssessmentQuestions) - 1
	answer := func(a domain.AssessmentAnswer) {
		o.assessment.Answer(o.questionCursor, a)
		if o.questionCursor < last {
			o.questionCursor++
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if o.questionCursor > 0 {
			o.questionCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if o.questionCursor < last {
			o.questionCursor++
		}
	case key.Matches(msg, m.keys.AnswerYes):
		answer(domain.AnswerYes)
	case key.Matches(msg, m.keys.AnswerMay):
		answer(domain.AnswerMaybe)
	case key.Matches(msg, m.keys.AnswerNo):
		answer(domain.AnswerNo)
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(navigation.Submit)
	case key.Matches(msg, m.keys.Back):
		m.dispatch(navigation.Back)
	}
	return m, nil
}

func (m *Model) viewAssessment() string {
	o := m.onboarding
	rows := []string{m.styles.title.Render("Quick stress check"), ""}
	for i, q := range domain.AssessmentQuestions {
		marker := "  "
		style := m.styles.muted
		if i == o.questionCursor {
			marker = "› "
			style = m.styles.selected
		}
		rows = append(rows, style.Render(marker+q))

		var opts []string
		for _, opt := range domain.AssessmentOptions {
			label := string(opt)
			if o.assessment.Answers[i] == opt {
				opts = append(opts, m.styles.accent.Render("["+label+"]"))
			} else {
				opts = append(opts, m.styles.muted.Render(" "+label+" "))
			}
		}
		rows = append(rows, "    "+strings.Join(opts, " "), "")
	}
	rows = append(rows, m.styles.help.Render("[y]es  [m]aybe  [n]o  [↑/↓] question  [enter] continue  [esc] back"))
	return m.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// --- Intro ---

func (m *Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.dispatch(navigation.Proceed)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		m.dispatch(navigation.Back)
	}
	return m, nil
}

func (m *Model) viewIntro() string {
	text := lipgloss.NewStyle().Width(max(min(m.width-10, 60), 20)).Render(
		"Long shifts, deadlines and hard stories take a toll. Mind It helps you " +
			"notice the small breaks that bring you back: reading, a walk, a few " +
			"slow breaths. Time them here and watch the minutes add up.")
	rows := []string{
		m.styles.title.Render("Made for busy minds"),
		"",
		m.styles.muted.Render(text),
		"",
		m.styles.help.Render("[enter] create your profile  [esc] back"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// --- Registration ---

func (m *Model) updateRegistration(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m, m.submitRegistration()
	case key.Matches(msg, m.keys.Login):
		m.dispatch(navigation.GoLogin)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Tab), msg.Type == tea.KeyDown:
		return m, m.onboarding.moveFocus(navigation.Registration, 1)
	case key.Matches(msg, m.keys.ShiftTab), msg.Type == tea.KeyUp:
		return m, m.onboarding.moveFocus(navigation.Registration, -1)
	}
	return m, m.onboarding.updateFocused(navigation.Registration, msg)
}

func (m *Model) submitRegistration() tea.Cmd {
	if !m.nav.CanSubmit() {
		m.dispatch(navigation.Submit)
		return nil
	}
	profile, err := domain.NewProfile(m.onboarding.registrationForm())
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if m.dispatch(navigation.Submit) {
		m.onboarding.profile = profile
	}
	return nil
}

func (m *Model) viewRegistration() string {
	o := m.onboarding
	labels := []string{"Name", "Email", "Password", "Confirm password"}
	rows := []string{m.styles.title.Render("Create your profile"), ""}
	for i, in := range o.register {
		rows = append(rows, m.styles.muted.Render(labels[i]), in.View())
	}
	form := o.registrationForm()
	if form.ConfirmPassword != "" && form.Password != form.ConfirmPassword {
		rows = append(rows, m.styles.errorText.Render("Passwords do not match."))
	}
	rows = append(rows, "", m.styles.help.Render("[enter] sign up  [tab] next field  [ctrl+l] log in instead"))
	return m.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// greeting is the selection screen headline.
func (m *Model) greeting() string {
	if name := m.onboarding.profile.FirstName(); name != "" {
		return fmt.Sprintf("Hi %s, how would you like to unwind?", name)
	}
	return "How would you like to unwind?"
}
