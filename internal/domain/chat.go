package domain

import "fmt"

// ChatRole identifies the speaker of a chat turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMode selects how the assistant is configured for a request.
type ChatMode string

const (
	ChatModeStandard ChatMode = "standard"
	ChatModeFast     ChatMode = "fast"
	ChatModeThinking ChatMode = "thinking"
)

// ValidChatModes lists all supported chat modes in selector order.
var ValidChatModes = []ChatMode{
	ChatModeStandard,
	ChatModeFast,
	ChatModeThinking,
}

// ValidateChatMode checks if a string is a valid chat mode.
func ValidateChatMode(s string) (ChatMode, error) {
	m := ChatMode(s)
	for _, valid := range ValidChatModes {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of standard, fast, thinking", ErrInvalidChatMode, s)
}

// Label returns the label shown on the mode selector.
func (m ChatMode) Label() string {
	switch m {
	case ChatModeStandard:
		return "Chat"
	case ChatModeFast:
		return "Fast"
	case ChatModeThinking:
		return "Deep Think"
	default:
		return "Unknown"
	}
}

// Fixed user-visible texts of the assistant.
const (
	GreetingID     = "init"
	GreetingText   = "Hi! I am your Mind It assistant. How are you feeling today?"
	FallbackText   = "Sorry, I encountered an error while processing your request. Please check your connection or try again."
	EmptyReplyText = "I'm having trouble thinking clearly right now."
)

// ChatMessage is one turn of the persisted transcript.
type ChatMessage struct {
	ID   string   `json:"id"`
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// NewChatMessage creates a message with a fresh identifier.
func NewChatMessage(role ChatRole, text string) ChatMessage {
	return ChatMessage{ID: generateID(), Role: role, Text: text}
}

// GreetingMessage is the transcript seed used when nothing valid is stored.
func GreetingMessage() ChatMessage {
	return ChatMessage{ID: GreetingID, Role: RoleModel, Text: GreetingText}
}

// ChatTurn is a prior turn forwarded to the model as conversation history.
type ChatTurn struct {
	Role ChatRole
	Text string
}

// TurnsFromMessages converts transcript messages into model history.
func TurnsFromMessages(msgs []ChatMessage) []ChatTurn {
	turns := make([]ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, ChatTurn{Role: m.Role, Text: m.Text})
	}
	return turns
}
