package ports

import (
	"context"

	"github.com/xvierd/mindit-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider exposes the session recorder to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// GetCurrentState returns the current application state.
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	// StartSession begins timing a session for the activity.
	StartSession(ctx context.Context, activity domain.ActivityKind) (*domain.CurrentState, error)

	// CompleteSession stops the clock and records the session.
	CompleteSession(ctx context.Context) (*domain.SessionRecord, error)
}

// MCPChatProvider exposes the chat proxy to the MCP server.
// This is a driven port (implemented by services layer).
type MCPChatProvider interface {
	// Send forwards a user message and returns the assistant reply.
	Send(ctx context.Context, text string, mode domain.ChatMode) (domain.ChatMessage, error)

	// Messages returns the full transcript.
	Messages() []domain.ChatMessage

	// Clear resets the transcript to the greeting.
	Clear(ctx context.Context) error
}
