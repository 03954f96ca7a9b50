package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Timer implements the ports.Timer interface using Bubbletea.
type Timer struct {
	program *tea.Program
	theme   Theme
	cmdChan chan ports.TimerCommand
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup

	cmdCallback  func(cmd ports.TimerCommand) error
	fetchTasks   func() []*domain.Task
	onSelectTask func(id string) error
}

// NewTimer creates a new TUI timer adapter with the given theme.
func NewTimer(theme Theme) *Timer {
	return &Timer{
		theme:   theme,
		cmdChan: make(chan ports.TimerCommand, 10),
	}
}

// Ensure Timer implements ports.Timer.
var _ ports.Timer = (*Timer)(nil)

// Run starts the timer interface and blocks until completion.
func (t *Timer) Run(ctx context.Context, initialState *domain.CurrentState) error {
	model := NewModel(initialState, t.theme)
	model.commandCallback = func(cmd ports.TimerCommand) error {
		t.SendCommand(cmd)
		return nil
	}

	t.mu.RLock()
	model.fetchTasks = t.fetchTasks
	model.onSelectTask = t.onSelectTask
	t.mu.RUnlock()

	t.mu.Lock()
	t.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.mu.Unlock()
	defer t.cancel()

	// Commands run off the UI goroutine; failures surface back in the view.
	t.mu.RLock()
	callback := t.cmdCallback
	t.mu.RUnlock()
	if callback != nil {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			for {
				select {
				case <-t.ctx.Done():
					return
				case cmd, ok := <-t.cmdChan:
					if !ok {
						return
					}
					if err := callback(cmd); err != nil {
						t.send(cmdErrMsg{err: err})
					}
				}
			}
		}()
	}

	// Handle context cancellation
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-t.ctx.Done()
		t.mu.RLock()
		program := t.program
		t.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	_, err := t.program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	// Signal cancellation and wait for goroutines
	t.cancel()
	t.wg.Wait()

	return nil
}

// Stop gracefully stops the timer interface.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	if t.program != nil {
		t.program.Quit()
	}
}

// SetCommandCallback sets a function to call when commands are received.
// Note: the forwarding goroutine is started in Run() after the context
// is initialized.
func (t *Timer) SetCommandCallback(callback func(cmd ports.TimerCommand) error) {
	t.mu.Lock()
	t.cmdCallback = callback
	t.mu.Unlock()
}

// SetFetchTasks sets the source for the task picker overlay.
func (t *Timer) SetFetchTasks(fetch func() []*domain.Task) {
	t.mu.Lock()
	t.fetchTasks = fetch
	t.mu.Unlock()
}

// SetOnSelectTask sets the callback fired when a task is chosen in the
// picker. An empty ID clears the active task.
func (t *Timer) SetOnSelectTask(callback func(id string) error) {
	t.mu.Lock()
	t.onSelectTask = callback
	t.mu.Unlock()
}

// SendCommand sends a command to the timer (for testing or automation).
func (t *Timer) SendCommand(cmd ports.TimerCommand) {
	t.mu.RLock()
	ctx := t.ctx
	t.mu.RUnlock()
	if ctx == nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	case t.cmdChan <- cmd:
	}
}

// UpdateState updates the displayed state.
func (t *Timer) UpdateState(state *domain.CurrentState) {
	t.send(state)
}

// NotifySessionEnd announces a finished session so the view can flash
// the transition.
func (t *Timer) NotifySessionEnd(ended, next domain.SessionType) {
	t.send(endMsg{ended: ended, next: next})
}

// send delivers a message to the running program, if any.
func (t *Timer) send(msg tea.Msg) {
	t.mu.RLock()
	program := t.program
	t.mu.RUnlock()

	if program != nil {
		program.Send(msg)
	}
}
