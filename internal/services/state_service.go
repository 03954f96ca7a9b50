package services

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// StateService assembles the combined read model and implements the
// MCPStateProvider interface.
type StateService struct {
	storage ports.Storage
	tasks   *TaskService
	timer   *TimerService
}

// NewStateService creates a new state service.
func NewStateService(storage ports.Storage) *StateService {
	return &StateService{storage: storage}
}

// SetTaskService sets the task service for task operations.
func (s *StateService) SetTaskService(tasks *TaskService) {
	s.tasks = tasks
}

// SetTimerService sets the timer service for countdown state.
func (s *StateService) SetTimerService(timer *TimerService) {
	s.timer = timer
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *StateService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	state := &domain.CurrentState{}

	if s.timer != nil {
		state.Timer = s.timer.State()
		state.Streak = s.timer.Streak()
		state.SessionsUntilLong = s.timer.SessionsUntilLong()
	}

	if s.tasks != nil {
		task, err := s.tasks.ActiveTask(ctx)
		if err == nil {
			state.ActiveTask = task
		}
	}

	day := domain.DayKey(s.clock()())
	state.Today = domain.DailyStats{Date: day}
	if today, err := s.storage.Stats().Day(ctx, day); err == nil {
		state.Today = *today
	}

	return state, nil
}

// ListTasks implements ports.MCPStateProvider.
func (s *StateService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	return s.storage.Tasks().FindAll(ctx)
}

// AddTask implements ports.MCPStateProvider.
func (s *StateService) AddTask(ctx context.Context, text string, estimated int) (*domain.Task, error) {
	if s.tasks == nil {
		return nil, domain.ErrTaskNotFound
	}
	return s.tasks.Add(ctx, AddTaskRequest{Text: text, Estimated: estimated})
}

// CompleteTask implements ports.MCPStateProvider.
func (s *StateService) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if s.tasks == nil {
		return nil, domain.ErrTaskNotFound
	}
	return s.tasks.Toggle(ctx, id)
}

// SetActiveTask implements ports.MCPStateProvider.
func (s *StateService) SetActiveTask(ctx context.Context, id string) error {
	if s.tasks == nil {
		return domain.ErrTaskNotFound
	}
	return s.tasks.SetActive(ctx, id)
}

// GetStats implements ports.MCPStateProvider.
func (s *StateService) GetStats(ctx context.Context, days int) ([]*domain.DailyStats, error) {
	if days < 1 {
		days = 1
	}
	now := s.clock()()
	to := domain.DayKey(now)
	from := domain.DayKey(now.AddDate(0, 0, -(days - 1)))
	return s.storage.Stats().Range(ctx, from, to)
}

// GetRecentSessions implements ports.MCPStateProvider.
func (s *StateService) GetRecentSessions(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	if limit < 1 {
		limit = 10
	}
	return s.storage.History().Recent(ctx, limit)
}

// clock returns the engine clock when available, so stats queries line
// up with the engine's idea of today.
func (s *StateService) clock() func() time.Time {
	if s.timer != nil {
		return s.timer.now
	}
	return time.Now
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)
