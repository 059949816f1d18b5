// Package chatmode encapsulates the assistant configuration for each chat mode.
// The chat service and the TUI query the Mode interface for model settings
// and labels instead of switching on the mode everywhere.
package chatmode

import (
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
)

const (
	coachInstruction   = "You are a helpful, empathetic mental wellness coach named 'Mind It Bot'."
	conciseInstruction = "You are a concise, helpful assistant. Keep answers short and quick."
)

// Mode defines the interface for mode-specific assistant behavior.
type Mode interface {
	// Name returns the mode identifier.
	Name() domain.ChatMode

	// Label returns the text shown on the mode selector.
	Label() string

	// Model returns the model identifier requests are sent to.
	Model() string

	// SystemInstruction returns the persona text, or empty for none.
	SystemInstruction() string

	// ThinkingBudget returns the extended-reasoning token budget, or nil
	// when the mode does not request extended reasoning.
	ThinkingBudget() *int32

	// PendingText returns the indicator shown while a reply is awaited.
	PendingText() string
}

// ForMode returns the Mode implementation for the given chat mode.
// A nil config yields the built-in defaults.
func ForMode(m domain.ChatMode, cfg *config.Config) Mode {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	defaults := config.DefaultConfig().Chat
	c := cfg.Chat

	switch m {
	case domain.ChatModeFast:
		return &fastMode{model: orDefault(c.FastModel, defaults.FastModel)}
	case domain.ChatModeThinking:
		budget := c.ThinkingBudget
		if budget <= 0 {
			budget = defaults.ThinkingBudget
		}
		return &thinkingMode{
			model:  orDefault(c.ThinkingModel, defaults.ThinkingModel),
			budget: int32(budget),
		}
	default:
		return &standardMode{model: orDefault(c.StandardModel, defaults.StandardModel)}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// --- Standard Mode ---

type standardMode struct{ model string }

func (s *standardMode) Name() domain.ChatMode     { return domain.ChatModeStandard }
func (s *standardMode) Label() string             { return domain.ChatModeStandard.Label() }
func (s *standardMode) Model() string             { return s.model }
func (s *standardMode) SystemInstruction() string { return coachInstruction }
func (s *standardMode) ThinkingBudget() *int32    { return nil }
func (s *standardMode) PendingText() string       { return "Typing..." }

// --- Fast Mode ---

type fastMode struct{ model string }

func (f *fastMode) Name() domain.ChatMode     { return domain.ChatModeFast }
func (f *fastMode) Label() string             { return domain.ChatModeFast.Label() }
func (f *fastMode) Model() string             { return f.model }
func (f *fastMode) SystemInstruction() string { return conciseInstruction }
func (f *fastMode) ThinkingBudget() *int32    { return nil }
func (f *fastMode) PendingText() string       { return "Typing..." }

// --- Thinking Mode ---

type thinkingMode struct {
	model  string
	budget int32
}

func (d *thinkingMode) Name() domain.ChatMode     { return domain.ChatModeThinking }
func (d *thinkingMode) Label() string             { return domain.ChatModeThinking.Label() }
func (d *thinkingMode) Model() string             { return d.model }
func (d *thinkingMode) SystemInstruction() string { return "" }
func (d *thinkingMode) PendingText() string       { return "Thinking deeply..." }

func (d *thinkingMode) ThinkingBudget() *int32 {
	b := d.budget
	return &b
}
