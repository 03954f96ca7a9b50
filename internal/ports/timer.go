package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// TimerCommand represents a user action during timer operation.
type TimerCommand string

const (
	// CmdStart starts or resumes the countdown.
	CmdStart TimerCommand = "start"

	// CmdPause pauses the countdown.
	CmdPause TimerCommand = "pause"

	// CmdSkip skips the current break back to a work session.
	CmdSkip TimerCommand = "skip"

	// CmdReset resets the current session to its full duration.
	CmdReset TimerCommand = "reset"

	// CmdQuit exits the application.
	CmdQuit TimerCommand = "quit"
)

// Timer is the combined interface for TUI timer operations.
// This is a driving port (called by the application layer).
type Timer interface {
	// Run starts the timer interface and blocks until completion.
	Run(ctx context.Context, initialState *domain.CurrentState) error

	// Stop gracefully stops the timer interface.
	Stop()

	// SetCommandCallback sets a function to call when commands are received.
	// Command errors surface as a transient message in the interface.
	SetCommandCallback(callback func(cmd TimerCommand) error)

	// SetFetchTasks sets a function that returns the current task list
	// for the selection overlay.
	SetFetchTasks(fetch func() []*domain.Task)

	// SetOnSelectTask sets a callback fired when a task is chosen in
	// the selection overlay. An empty ID clears the active task.
	SetOnSelectTask(callback func(id string) error)

	// UpdateState updates the displayed state.
	UpdateState(state *domain.CurrentState)

	// NotifySessionEnd announces a finished session so the interface
	// can flash the transition.
	NotifySessionEnd(ended domain.SessionType, next domain.SessionType)
}
