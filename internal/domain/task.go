// Package domain contains the core business entities for pomo: the countdown
// state machine, tasks, settings, and daily statistics. These are independent
// of any external frameworks or infrastructure.
package domain

import (
	"errors"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskText = errors.New("task text cannot be empty")
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskCompleted = errors.New("task is already completed")
)

// Estimate bounds for a task's planned pomodoro count.
const (
	MinEstimate = 1
	MaxEstimate = 10
)

// Task represents a unit of work on the ordered task list.
type Task struct {
	ID          string
	Text        string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
	Estimated   int
	Actual      int
	Position    int
}

// NewTask creates a task with trimmed text and a clamped estimate.
func NewTask(text string, estimated int) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}

	return &Task{
		ID:        generateID(),
		Text:      text,
		Estimated: ClampEstimate(estimated),
		CreatedAt: time.Now(),
	}, nil
}

// ClampEstimate forces an estimate into [MinEstimate, MaxEstimate].
func ClampEstimate(n int) int {
	if n < MinEstimate {
		return MinEstimate
	}
	if n > MaxEstimate {
		return MaxEstimate
	}
	return n
}

// Toggle flips the completion state, stamping or clearing CompletedAt.
func (t *Task) Toggle(now time.Time) {
	if t.Completed {
		t.Completed = false
		t.CompletedAt = nil
		return
	}
	t.Completed = true
	t.CompletedAt = &now
}

// IncrementActual records one completed pomodoro against the task.
func (t *Task) IncrementActual() {
	t.Actual++
}

// SetEstimate updates the planned pomodoro count, clamped to the valid range.
func (t *Task) SetEstimate(n int) {
	t.Estimated = ClampEstimate(n)
}
