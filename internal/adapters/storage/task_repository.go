package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// taskRepository implements ports.TaskRepository using SQLite.
type taskRepository struct {
	db *sql.DB
}

// newTaskRepository creates a new task repository.
func newTaskRepository(db *sql.DB) ports.TaskRepository {
	return &taskRepository{db: db}
}

// Save persists a new task to storage.
func (r *taskRepository) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, text, completed, created_at, completed_at, estimated, actual, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Text,
		task.Completed,
		task.CreatedAt,
		task.CompletedAt,
		task.Estimated,
		task.Actual,
		task.Position,
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("task %s already exists", task.ID)
		}
		return fmt.Errorf("failed to save task: %w", err)
	}

	return nil
}

// Update modifies an existing task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET text = ?, completed = ?, completed_at = ?, estimated = ?, actual = ?, position = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		task.Text,
		task.Completed,
		task.CompletedAt,
		task.Estimated,
		task.Actual,
		task.Position,
		task.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// FindByID retrieves a task by its unique identifier.
func (r *taskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
		SELECT id, text, completed, created_at, completed_at, estimated, actual, position
		FROM tasks
		WHERE id = ?
	`

	var task domain.Task
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Text,
		&task.Completed,
		&task.CreatedAt,
		&completedAt,
		&task.Estimated,
		&task.Actual,
		&task.Position,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}

// FindAll retrieves all tasks ordered by list position.
func (r *taskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	query := `
		SELECT id, text, completed, created_at, completed_at, estimated, actual, position
		FROM tasks
		ORDER BY position ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return r.scanTasks(rows)
}

// FindByText does a fuzzy search for tasks by text.
func (r *taskRepository) FindByText(ctx context.Context, query string) ([]*domain.Task, error) {
	// First get all tasks
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for fuzzy search: %w", err)
	}

	// Prepare texts for fuzzy search
	texts := make([]string, len(tasks))
	for i, task := range tasks {
		texts[i] = task.Text
	}

	// Perform fuzzy search
	matches := fuzzy.Find(query, texts)

	// Collect matching tasks
	var result []*domain.Task
	for _, match := range matches {
		result = append(result, tasks[match.Index])
	}

	return result, nil
}

// Delete removes a task from storage.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// MaxPosition returns the highest list position in use, or -1 when
// the list is empty.
func (r *taskRepository) MaxPosition(ctx context.Context) (int, error) {
	query := `SELECT COALESCE(MAX(position), -1) FROM tasks`

	var max int
	if err := r.db.QueryRowContext(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max position: %w", err)
	}

	return max, nil
}

// Reorder rewrites the positions of all tasks to match the given ID order.
func (r *taskRepository) Reorder(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE tasks SET position = ? WHERE id = ?`
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, query, i, id); err != nil {
			return fmt.Errorf("failed to reposition task %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// scanTasks scans multiple task rows.
func (r *taskRepository) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task

	for rows.Next() {
		var task domain.Task
		var completedAt sql.NullTime

		err := rows.Scan(
			&task.ID,
			&task.Text,
			&task.Completed,
			&task.CreatedAt,
			&completedAt,
			&task.Estimated,
			&task.Actual,
			&task.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		if completedAt.Valid {
			task.CompletedAt = &completedAt.Time
		}

		tasks = append(tasks, &task)
	}

	return tasks, rows.Err()
}
