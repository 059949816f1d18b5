// Package gemini implements the chat model port on the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
	"google.golang.org/genai"
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client sends chat requests to Gemini.
type Client struct {
	generate generateFunc
}

// Ensure Client implements ports.ChatModel.
var _ ports.ChatModel = (*Client)(nil)

// New creates a Gemini client. It returns domain.ErrMissingCredential when
// apiKey is empty.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{generate: client.Models.GenerateContent}, nil
}

// Generate implements ports.ChatModel.
func (c *Client) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	if req.Model == "" {
		return "", errors.New("no model configured")
	}

	resp, err := c.generate(ctx, req.Model, buildContents(req), buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", req.Model, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", domain.ErrEmptyResponse
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

// buildContents turns the prior turns plus the new prompt into request contents.
func buildContents(req ports.GenerateRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Text, roleOf(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))
	return contents
}

func buildConfig(req ports.GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.ThinkingBudget != nil {
		budget := *req.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	return cfg
}

func roleOf(r domain.ChatRole) genai.Role {
	if r == domain.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
