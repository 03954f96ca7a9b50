package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/xvierd/pomo/internal/adapters/tui"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// launchTimer wires the timer engine to the TUI and blocks until the
// user quits or the process is signaled. The engine goroutine gets a
// chance to persist its final snapshot before we return.
func launchTimer() error {
	ctx, cancel := context.WithCancel(setupSignalHandler())
	defer cancel()

	state, err := app.state.GetCurrentState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current state: %w", err)
	}

	timer := tui.NewTimer(tui.ThemeFor(app.settings.Current().DarkMode))

	timer.SetCommandCallback(func(cmd ports.TimerCommand) error {
		switch cmd {
		case ports.CmdStart:
			app.timer.Start(ctx)
		case ports.CmdPause:
			app.timer.Pause(ctx)
		case ports.CmdSkip:
			return app.timer.SkipBreak(ctx)
		case ports.CmdReset:
			app.timer.Reset(ctx)
		case ports.CmdQuit:
			// The model quits itself; the engine is stopped below.
		default:
			return fmt.Errorf("unknown timer command %q", cmd)
		}
		return nil
	})

	timer.SetFetchTasks(func() []*domain.Task {
		tasks, err := app.tasks.List(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load tasks: %v\n", err)
			return nil
		}
		return tasks
	})

	timer.SetOnSelectTask(func(id string) error {
		var err error
		if id == "" {
			err = app.tasks.ClearActive(ctx)
		} else {
			err = app.tasks.SetActive(ctx, id)
		}
		if err != nil {
			return err
		}
		if fresh, err := app.state.GetCurrentState(ctx); err == nil {
			timer.UpdateState(fresh)
		}
		return nil
	})

	app.timer.SetOnChange(func(domain.TimerState) {
		fresh, err := app.state.GetCurrentState(ctx)
		if err != nil {
			return
		}
		timer.UpdateState(fresh)
	})
	app.timer.SetOnSessionEnd(timer.NotifySessionEnd)

	engineDone := make(chan struct{})
	go func() {
		app.timer.Run(ctx)
		close(engineDone)
	}()

	err = timer.Run(ctx, state)
	cancel()
	<-engineDone

	if err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}
