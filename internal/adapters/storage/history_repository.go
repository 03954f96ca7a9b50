package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// historyRepository implements ports.HistoryRepository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new completed-session log repository.
func newHistoryRepository(db *sql.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

// Append records a completed work session and prunes entries beyond
// the retention cap, oldest first.
func (r *historyRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	insert := `
		INSERT INTO session_history (completed_at, duration_minutes, task_name, repository, branch)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, insert,
		entry.CompletedAt,
		entry.DurationMinutes,
		entry.TaskName,
		entry.Repository,
		entry.Branch,
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	prune := `
		DELETE FROM session_history
		WHERE id NOT IN (
			SELECT id FROM session_history
			ORDER BY completed_at DESC, id DESC
			LIMIT ?
		)
	`

	if _, err := r.db.ExecContext(ctx, prune, domain.HistoryCap); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	return nil
}

// Recent retrieves up to limit entries, newest first.
func (r *historyRepository) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, completed_at, duration_minutes, task_name, repository, branch
		FROM session_history
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanEntries(rows)
}

// Since retrieves entries completed at or after the given time, newest first.
func (r *historyRepository) Since(ctx context.Context, t time.Time) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, completed_at, duration_minutes, task_name, repository, branch
		FROM session_history
		WHERE completed_at >= ?
		ORDER BY completed_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, t)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanEntries(rows)
}

// Count returns the number of retained entries.
func (r *historyRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// scanEntries scans multiple history rows.
func (r *historyRepository) scanEntries(rows *sql.Rows) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry

	for rows.Next() {
		var entry domain.HistoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.CompletedAt,
			&entry.DurationMinutes,
			&entry.TaskName,
			&entry.Repository,
			&entry.Branch,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
