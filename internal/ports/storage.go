// Package ports defines the interfaces (driven and driving ports)
// for the pomo application following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// TaskRepository defines the interface for task persistence.
// This is a driven port (implemented by adapters).
type TaskRepository interface {
	// Save persists a new task to storage.
	Save(ctx context.Context, task *domain.Task) error

	// Update modifies an existing task.
	Update(ctx context.Context, task *domain.Task) error

	// FindByID retrieves a task by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// FindAll retrieves all tasks ordered by list position.
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindByText does a fuzzy search for tasks by text.
	FindByText(ctx context.Context, query string) ([]*domain.Task, error)

	// Delete removes a task from storage.
	Delete(ctx context.Context, id string) error

	// MaxPosition returns the highest list position in use, or -1
	// when the list is empty.
	MaxPosition(ctx context.Context) (int, error)

	// Reorder rewrites the positions of all tasks to match the
	// given ID order.
	Reorder(ctx context.Context, ids []string) error
}

// StatsRepository defines the interface for daily statistics persistence.
// This is a driven port (implemented by adapters).
type StatsRepository interface {
	// Day retrieves the stats row for a calendar date, returning a
	// zeroed entry when none has been recorded yet.
	Day(ctx context.Context, date string) (*domain.DailyStats, error)

	// SaveDay upserts the stats row for a calendar date.
	SaveDay(ctx context.Context, stats *domain.DailyStats) error

	// Range retrieves stats rows between two dates inclusive,
	// ordered oldest first.
	Range(ctx context.Context, from, to string) ([]*domain.DailyStats, error)
}

// HistoryRepository defines the interface for the completed-session log.
// This is a driven port (implemented by adapters).
type HistoryRepository interface {
	// Append records a completed work session and prunes entries
	// beyond the retention cap.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// Recent retrieves up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)

	// Since retrieves entries completed at or after the given time,
	// newest first.
	Since(ctx context.Context, t time.Time) ([]*domain.HistoryEntry, error)

	// Count returns the number of retained entries.
	Count(ctx context.Context) (int, error)
}

// StateRepository defines the interface for small keyed application
// state such as the active task and the timer snapshot.
// This is a driven port (implemented by adapters).
type StateRepository interface {
	// Get retrieves the value for a key. Missing keys return
	// domain-level absence via ok=false, not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set upserts the value for a key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key, ignoring keys that do not exist.
	Delete(ctx context.Context, key string) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Tasks provides access to task operations.
	Tasks() TaskRepository

	// Stats provides access to daily statistics operations.
	Stats() StatsRepository

	// History provides access to the completed-session log.
	History() HistoryRepository

	// State provides access to keyed application state.
	State() StateRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
