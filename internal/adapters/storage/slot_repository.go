package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/mindit-cli/internal/ports"
)

// slotRepository implements ports.SlotRepository using SQLite.
type slotRepository struct {
	db *sql.DB
}

// newSlotRepository creates a new slot repository.
func newSlotRepository(db *sql.DB) ports.SlotRepository {
	return &slotRepository{db: db}
}

// Get returns the value stored under name.
func (r *slotRepository) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %q: %w", name, err)
	}
	return value, true, nil
}

// Put overwrites the slot.
func (r *slotRepository) Put(ctx context.Context, name string, value string) error {
	query := `
		INSERT INTO slots (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, name, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", name, err)
	}
	return nil
}

// Delete removes the slot.
func (r *slotRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", name, err)
	}
	return nil
}
