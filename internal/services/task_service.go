// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// TaskService handles task-related use cases, including which task
// is currently active.
type TaskService struct {
	storage ports.Storage
	now     func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(storage ports.Storage) *TaskService {
	return &TaskService{
		storage: storage,
		now:     time.Now,
	}
}

// AddTaskRequest contains the data needed to create a new task.
type AddTaskRequest struct {
	Text      string
	Estimated int
}

// Add creates a new task at the end of the list.
func (s *TaskService) Add(ctx context.Context, req AddTaskRequest) (*domain.Task, error) {
	task, err := domain.NewTask(req.Text, req.Estimated)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	max, err := s.storage.Tasks().MaxPosition(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to place task: %w", err)
	}
	task.Position = max + 1

	if err := s.storage.Tasks().Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return task, nil
}

// List retrieves all tasks in list order.
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.storage.Tasks().FindAll(ctx)
}

// Filter retrieves tasks fuzzy-matching the given query.
func (s *TaskService) Filter(ctx context.Context, query string) ([]*domain.Task, error) {
	return s.storage.Tasks().FindByText(ctx, query)
}

// Get retrieves a single task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.storage.Tasks().FindByID(ctx, id)
}

// Toggle flips a task's completion state. Completing the active task
// also clears the active selection.
func (s *TaskService) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Toggle(s.now())
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if task.Completed {
		if err := s.clearActiveIf(ctx, id); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// Delete removes a task, clearing the active selection if it pointed
// at the removed task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.storage.Tasks().Delete(ctx, id); err != nil {
		return err
	}
	return s.clearActiveIf(ctx, id)
}

// MoveTo places a task at the given zero-based index in the list,
// shifting the tasks in between. Out-of-range targets clamp to the
// nearest edge.
func (s *TaskService) MoveTo(ctx context.Context, id string, index int) error {
	tasks, err := s.storage.Tasks().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	from := -1
	for i, task := range tasks {
		if task.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return domain.ErrTaskNotFound
	}

	if index < 0 {
		index = 0
	}
	if index > len(tasks)-1 {
		index = len(tasks) - 1
	}
	if index == from {
		return nil
	}

	moved := tasks[from]
	tasks = append(tasks[:from], tasks[from+1:]...)
	tasks = append(tasks[:index], append([]*domain.Task{moved}, tasks[index:]...)...)

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	return s.storage.Tasks().Reorder(ctx, ids)
}

// SetEstimate updates a task's pomodoro estimate, clamped to the
// allowed range.
func (s *TaskService) SetEstimate(ctx context.Context, id string, estimated int) (*domain.Task, error) {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.SetEstimate(estimated)
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// SetActive marks a task as the active one. Selecting the task that
// is already active clears the selection. Completed tasks cannot be
// activated.
func (s *TaskService) SetActive(ctx context.Context, id string) error {
	task, err := s.storage.Tasks().FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if task.Completed {
		return domain.ErrTaskCompleted
	}

	current, _, err := s.storage.State().Get(ctx, stateKeyActiveTask)
	if err != nil {
		return fmt.Errorf("failed to read active task: %w", err)
	}
	if current == id {
		return s.ClearActive(ctx)
	}

	return s.storage.State().Set(ctx, stateKeyActiveTask, id)
}

// ClearActive drops the active task selection.
func (s *TaskService) ClearActive(ctx context.Context) error {
	return s.storage.State().Delete(ctx, stateKeyActiveTask)
}

// ActiveTask returns the active task, or nil when none is selected.
// A selection pointing at a vanished task is cleared on read.
func (s *TaskService) ActiveTask(ctx context.Context) (*domain.Task, error) {
	id, ok, err := s.storage.State().Get(ctx, stateKeyActiveTask)
	if err != nil {
		return nil, fmt.Errorf("failed to read active task: %w", err)
	}
	if !ok || id == "" {
		return nil, nil
	}

	task, err := s.storage.Tasks().FindByID(ctx, id)
	if errors.Is(err, domain.ErrTaskNotFound) {
		_ = s.ClearActive(ctx)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

// IncrementActive adds one completed pomodoro to the active task.
// With no active task it reports nil without error.
func (s *TaskService) IncrementActive(ctx context.Context) (*domain.Task, error) {
	task, err := s.ActiveTask(ctx)
	if err != nil || task == nil {
		return nil, err
	}

	task.IncrementActual()
	if err := s.storage.Tasks().Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// clearActiveIf drops the active selection when it points at id.
func (s *TaskService) clearActiveIf(ctx context.Context, id string) error {
	current, ok, err := s.storage.State().Get(ctx, stateKeyActiveTask)
	if err != nil {
		return fmt.Errorf("failed to read active task: %w", err)
	}
	if ok && current == id {
		return s.ClearActive(ctx)
	}
	return nil
}
