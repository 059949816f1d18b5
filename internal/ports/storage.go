// Package ports defines the interfaces (driven and driving ports)
// for the Mind It application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/mindit-cli/internal/domain"
)

// TranscriptSlot is the name of the persisted slot holding the chat transcript.
const TranscriptSlot = "mindit_chat_history"

// SlotRepository stores opaque values under well-known names.
// This is a driven port (implemented by adapters).
type SlotRepository interface {
	// Get returns the value stored in the slot and whether it exists.
	Get(ctx context.Context, name string) (string, bool, error)

	// Put overwrites the slot with value.
	Put(ctx context.Context, name string, value string) error

	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, name string) error
}

// TranscriptRepository persists the chat transcript as a whole.
// This is a driven port (implemented by adapters).
type TranscriptRepository interface {
	// Load reads the stored transcript. It returns (nil, nil) when nothing is
	// stored and wraps domain.ErrCorruptTranscript when the slot is unparsable.
	Load(ctx context.Context) ([]domain.ChatMessage, error)

	// Save rewrites the stored transcript in full.
	Save(ctx context.Context, msgs []domain.ChatMessage) error

	// Clear removes the stored transcript.
	Clear(ctx context.Context) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Slots provides access to the raw named slots.
	Slots() SlotRepository

	// Transcripts provides access to the chat transcript.
	Transcripts() TranscriptRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
