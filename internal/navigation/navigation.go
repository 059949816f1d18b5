// Package navigation is the screen state machine of the app. It knows which
// screen is shown and which actions lead where; rendering and side effects
// belong to the UI.
package navigation

import (
	"fmt"

	"github.com/xvierd/mindit-cli/internal/domain"
)

// Screen identifies one full-screen view.
type Screen int

const (
	Landing Screen = iota
	Login
	StressAssessment
	JournalistIntro
	Registration
	Selection
	Session
	Report
)

var screenNames = [...]string{
	Landing:          "Landing",
	Login:            "Login",
	StressAssessment: "StressAssessment",
	JournalistIntro:  "JournalistIntro",
	Registration:     "Registration",
	Selection:        "Selection",
	Session:          "Session",
	Report:           "Report",
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// Action is a user intent that may move between screens.
type Action int

const (
	Begin Action = iota
	GoLogin
	Submit
	Proceed
	GoRegister
	Back
	SelectActivity
	Stop
	ViewReport
)

var actionNames = [...]string{
	Begin:          "Begin",
	GoLogin:        "GoLogin",
	Submit:         "Submit",
	Proceed:        "Proceed",
	GoRegister:     "GoRegister",
	Back:           "Back",
	SelectActivity: "SelectActivity",
	Stop:           "Stop",
	ViewReport:     "ViewReport",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

type edge struct {
	from   Screen
	action Action
}

var transitions = map[edge]Screen{
	{Landing, Begin}:            StressAssessment,
	{Landing, GoLogin}:          Login,
	{Login, Submit}:             Selection,
	{Login, GoRegister}:         Registration,
	{Login, Back}:               Landing,
	{StressAssessment, Submit}:  JournalistIntro,
	{StressAssessment, Back}:    Landing,
	{JournalistIntro, Proceed}:  Registration,
	{JournalistIntro, Back}:     Landing,
	{Registration, Submit}:      Selection,
	{Registration, GoLogin}:     Login,
	{Selection, SelectActivity}: Session,
	{Selection, ViewReport}:     Report,
	{Session, Stop}:             Report,
	{Report, Back}:              Selection,
}

// Next returns the screen action leads to, or domain.ErrInvalidTransition
// when action is not defined on that screen.
func Next(from Screen, action Action) (Screen, error) {
	to, ok := transitions[edge{from, action}]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", domain.ErrInvalidTransition, action, from)
	}
	return to, nil
}

// Actions lists the actions defined on a screen, in declaration order.
func Actions(from Screen) []Action {
	var out []Action
	for a := range actionNames {
		if _, ok := transitions[edge{from, Action(a)}]; ok {
			out = append(out, Action(a))
		}
	}
	return out
}

// ChatAvailable reports whether the assistant overlay can be opened on s.
func ChatAvailable(s Screen) bool {
	switch s {
	case Selection, Session, Report:
		return true
	default:
		return false
	}
}

// Guard decides whether Submit may leave a screen.
type Guard func() bool

// Navigator tracks the current screen.
type Navigator struct {
	current Screen
	guards  map[Screen]Guard
}

// New returns a navigator on the Landing screen.
func New() *Navigator {
	return &Navigator{current: Landing, guards: make(map[Screen]Guard)}
}

// Current returns the screen being shown.
func (n *Navigator) Current() Screen {
	return n.current
}

// SetGuard installs the completeness check consulted before Submit leaves s.
func (n *Navigator) SetGuard(s Screen, g Guard) {
	n.guards[s] = g
}

// CanSubmit reports whether Submit would currently be accepted.
func (n *Navigator) CanSubmit() bool {
	if _, err := Next(n.current, Submit); err != nil {
		return false
	}
	g, ok := n.guards[n.current]
	return !ok || g()
}

// Dispatch applies action. On error the current screen is unchanged.
func (n *Navigator) Dispatch(action Action) (Screen, error) {
	to, err := Next(n.current, action)
	if err != nil {
		return n.current, err
	}
	if action == Submit {
		if g, ok := n.guards[n.current]; ok && !g() {
			return n.current, fmt.Errorf("%w on %s", domain.ErrIncompleteForm, n.current)
		}
	}
	n.current = to
	return to, nil
}
