package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/pomo/internal/ports"
)

// stateRepository implements ports.StateRepository using a key/value
// table in SQLite.
type stateRepository struct {
	db *sql.DB
}

// newStateRepository creates a new application state repository.
func newStateRepository(db *sql.DB) ports.StateRepository {
	return &stateRepository{db: db}
}

// Get retrieves the value for a key. Missing keys report ok=false.
func (r *stateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM app_state WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read state %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts the value for a key.
func (r *stateRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_state (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}

	return nil
}

// Delete removes a key, ignoring keys that do not exist.
func (r *stateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}

	return nil
}
