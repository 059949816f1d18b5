package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

// transcriptRepository stores the chat transcript as a JSON array in a
// single named slot.
type transcriptRepository struct {
	slots ports.SlotRepository
}

// newTranscriptRepository creates a new transcript repository.
func newTranscriptRepository(slots ports.SlotRepository) ports.TranscriptRepository {
	return &transcriptRepository{slots: slots}
}

// Load reads the stored transcript.
func (r *transcriptRepository) Load(ctx context.Context) ([]domain.ChatMessage, error) {
	raw, ok, err := r.slots.Get(ctx, ports.TranscriptSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var msgs []domain.ChatMessage
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptTranscript, err)
	}
	for _, m := range msgs {
		if m.Role != domain.RoleUser && m.Role != domain.RoleModel {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrCorruptTranscript, m.Role)
		}
	}
	return msgs, nil
}

// Save rewrites the stored transcript in full.
func (r *transcriptRepository) Save(ctx context.Context, msgs []domain.ChatMessage) error {
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	return r.slots.Put(ctx, ports.TranscriptSlot, string(data))
}

// Clear removes the stored transcript.
func (r *transcriptRepository) Clear(ctx context.Context) error {
	return r.slots.Delete(ctx, ports.TranscriptSlot)
}
