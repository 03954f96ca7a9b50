package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// statsRepository implements ports.StatsRepository using SQLite.
type statsRepository struct {
	db *sql.DB
}

// newStatsRepository creates a new daily statistics repository.
func newStatsRepository(db *sql.DB) ports.StatsRepository {
	return &statsRepository{db: db}
}

// Day retrieves the stats row for a calendar date. Days with no
// recorded work return a zeroed entry rather than an error.
func (r *statsRepository) Day(ctx context.Context, date string) (*domain.DailyStats, error) {
	query := `
		SELECT date, pomodoros, focus_minutes
		FROM daily_stats
		WHERE date = ?
	`

	var stats domain.DailyStats
	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&stats.Date,
		&stats.Pomodoros,
		&stats.FocusMinutes,
	)

	if err == sql.ErrNoRows {
		return &domain.DailyStats{Date: date}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find daily stats: %w", err)
	}

	return &stats, nil
}

// SaveDay upserts the stats row for a calendar date.
func (r *statsRepository) SaveDay(ctx context.Context, stats *domain.DailyStats) error {
	query := `
		INSERT INTO daily_stats (date, pomodoros, focus_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			pomodoros = excluded.pomodoros,
			focus_minutes = excluded.focus_minutes
	`

	_, err := r.db.ExecContext(ctx, query, stats.Date, stats.Pomodoros, stats.FocusMinutes)
	if err != nil {
		return fmt.Errorf("failed to save daily stats: %w", err)
	}

	return nil
}

// Range retrieves stats rows between two dates inclusive, oldest first.
func (r *statsRepository) Range(ctx context.Context, from, to string) ([]*domain.DailyStats, error) {
	query := `
		SELECT date, pomodoros, focus_minutes
		FROM daily_stats
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*domain.DailyStats
	for rows.Next() {
		var stats domain.DailyStats
		if err := rows.Scan(&stats.Date, &stats.Pomodoros, &stats.FocusMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		result = append(result, &stats)
	}

	return result, rows.Err()
}
