package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider provides state information to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// GetCurrentState returns the current application state.
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	// ListTasks returns all tasks ordered by list position.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// AddTask creates a task from text and a pomodoro estimate.
	AddTask(ctx context.Context, text string, estimated int) (*domain.Task, error)

	// CompleteTask toggles a task's completion state.
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)

	// SetActiveTask marks a task as the active one.
	SetActiveTask(ctx context.Context, id string) error

	// GetStats returns daily statistics for the trailing number of days.
	GetStats(ctx context.Context, days int) ([]*domain.DailyStats, error)

	// GetRecentSessions returns recent completed work sessions.
	GetRecentSessions(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}
