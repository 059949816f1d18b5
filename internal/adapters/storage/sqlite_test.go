package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xvierd/mindit-cli/internal/domain"
	"github.com/xvierd/mindit-cli/internal/ports"
)

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestSlotRepository(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Slots()

	t.Run("missing slot", func(t *testing.T) {
		_, ok, err := repo.Get(ctx, "nope")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() reported a missing slot as present")
		}
	})

	t.Run("put and overwrite", func(t *testing.T) {
		if err := repo.Put(ctx, "k", "one"); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := repo.Put(ctx, "k", "two"); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		v, ok, err := repo.Get(ctx, "k")
		if err != nil || !ok {
			t.Fatalf("Get() = %q, %v, %v", v, ok, err)
		}
		if v != "two" {
			t.Errorf("Get() = %q, want two", v)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, ok, _ := repo.Get(ctx, "k"); ok {
			t.Error("slot still present after Delete()")
		}
		if err := repo.Delete(ctx, "k"); err != nil {
			t.Errorf("Delete() of missing slot error = %v", err)
		}
	})
}

func TestTranscriptRepository(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Transcripts()

	t.Run("empty", func(t *testing.T) {
		msgs, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if msgs != nil {
			t.Errorf("Load() = %v, want nil", msgs)
		}
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		want := []domain.ChatMessage{
			domain.GreetingMessage(),
			domain.NewChatMessage(domain.RoleUser, "I feel tired"),
			domain.NewChatMessage(domain.RoleModel, "Let's try a breathing exercise."),
		}
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("Load() returned %d messages, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("stored under the transcript slot", func(t *testing.T) {
		raw, ok, err := storage.Slots().Get(ctx, ports.TranscriptSlot)
		if err != nil || !ok {
			t.Fatalf("Get(%s) = %v, %v", ports.TranscriptSlot, ok, err)
		}
		if raw == "" || raw[0] != '[' {
			t.Errorf("slot value = %q, want JSON array", raw)
		}
	})

	t.Run("corrupt json", func(t *testing.T) {
		_ = storage.Slots().Put(ctx, ports.TranscriptSlot, "{oops")
		if _, err := repo.Load(ctx); !errors.Is(err, domain.ErrCorruptTranscript) {
			t.Errorf("Load() error = %v, want ErrCorruptTranscript", err)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		_ = storage.Slots().Put(ctx, ports.TranscriptSlot, `[{"id":"1","role":"system","text":"x"}]`)
		if _, err := repo.Load(ctx); !errors.Is(err, domain.ErrCorruptTranscript) {
			t.Errorf("Load() error = %v, want ErrCorruptTranscript", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		msgs, err := repo.Load(ctx)
		if err != nil || msgs != nil {
			t.Errorf("Load() after Clear() = %v, %v", msgs, err)
		}
	})
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindit.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	msgs := []domain.ChatMessage{domain.GreetingMessage()}
	if err := first.Transcripts().Save(ctx, msgs); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	got, err := second.Transcripts().Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != domain.GreetingID {
		t.Errorf("Load() = %+v, want the greeting", got)
	}
}
