package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/xvierd/mindit-cli/internal/chatmode"
	"github.com/xvierd/mindit-cli/internal/config"
	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

// ChatService relays user messages to the assistant and keeps the
// persisted transcript in step with the in-memory one.
type ChatService struct {
	mu          sync.Mutex
	messages    []domain.ChatMessage
	inFlight    bool
	transcripts ports.TranscriptRepository
	model       ports.ChatModel
	cfg         *config.Config
}

// Ensure ChatService implements ports.MCPChatProvider.
var _ ports.MCPChatProvider = (*ChatService)(nil)

// NewChatService creates a chat service and loads the stored transcript.
// A nil model means no credential is configured; every reply is then the
// fallback text. An absent or unreadable transcript starts from the greeting.
func NewChatService(ctx context.Context, transcripts ports.TranscriptRepository, model ports.ChatModel, cfg *config.Config) *ChatService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &ChatService{
		transcripts: transcripts,
		model:       model,
		cfg:         cfg,
	}

	msgs, err := transcripts.Load(ctx)
	if err != nil {
		log.Printf("[chat] discarding stored transcript: %v", err)
	}
	if len(msgs) == 0 {
		msgs = []domain.ChatMessage{domain.GreetingMessage()}
	}
	s.messages = msgs
	return s
}

// Send appends text as a user message, asks the assistant in the given mode
// and appends the reply. Assistant failures are replaced with
// domain.FallbackText and never returned.
func (s *ChatService) Send(ctx context.Context, text string, mode domain.ChatMode) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}
	if _, err := domain.ValidateChatMode(string(mode)); err != nil {
		return domain.ChatMessage{}, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrRequestInFlight
	}
	s.inFlight = true
	prior := domain.TurnsFromMessages(s.messages)
	s.messages = append(s.messages, domain.NewChatMessage(domain.RoleUser, text))
	s.persistLocked(ctx)
	s.mu.Unlock()

	reply := domain.NewChatMessage(domain.RoleModel, s.generate(ctx, prior, text, mode))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, reply)
	s.inFlight = false
	s.persistLocked(ctx)
	return reply, nil
}

func (s *ChatService) generate(ctx context.Context, history []domain.ChatTurn, prompt string, mode domain.ChatMode) string {
	if s.model == nil {
		log.Printf("[chat] %v", domain.ErrMissingCredential)
		return domain.FallbackText
	}

	m := chatmode.ForMode(mode, s.cfg)
	if timeout := time.Duration(s.cfg.Chat.Timeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	reply, err := s.model.Generate(ctx, ports.GenerateRequest{
		Model:             m.Model(),
		SystemInstruction: m.SystemInstruction(),
		ThinkingBudget:    m.ThinkingBudget(),
		History:           history,
		Prompt:            prompt,
	})
	if errors.Is(err, domain.ErrEmptyResponse) || (err == nil && strings.TrimSpace(reply) == "") {
		return domain.EmptyReplyText
	}
	if err != nil {
		log.Printf("[chat] %s request failed: %v", mode, err)
		return domain.FallbackText
	}
	return reply
}

// persistLocked writes the transcript. Callers must hold s.mu.
func (s *ChatService) persistLocked(ctx context.Context) {
	if err := s.transcripts.Save(ctx, s.messages); err != nil {
		log.Printf("[chat] failed to persist transcript: %v", err)
	}
}

// Messages returns a copy of the transcript.
func (s *ChatService) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// InFlight reports whether a request is awaiting its reply.
func (s *ChatService) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// DefaultMode returns the mode configured as default.
func (s *ChatService) DefaultMode() domain.ChatMode {
	return s.cfg.Chat.Mode()
}

// Clear resets the transcript to the greeting and removes the stored copy.
func (s *ChatService) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.messages = []domain.ChatMessage{domain.GreetingMessage()}
	s.mu.Unlock()
	return s.transcripts.Clear(ctx)
}
