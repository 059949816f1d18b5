package ports

import (
	"context"

	"github.com/xvierd/mindit-cli/internal/domain"
)

// GenerateRequest is everything the model needs for one reply.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	ThinkingBudget    *int32
	History           []domain.ChatTurn
	Prompt            string
}

// ChatModel generates a reply from a generative-language service.
// This is a driven port (implemented by adapters).
type ChatModel interface {
	// Generate returns the text of the reply.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
