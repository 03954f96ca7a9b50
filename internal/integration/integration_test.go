package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

// testServices bundles the wired service layer over a temp database.
type testServices struct {
	store    ports.Storage
	tasks    *services.TaskService
	settings *services.SettingsService
	timer    *services.TimerService
	state    *services.StateService
}

// shortConfig keeps sessions at the clamp floor so a work session
// completes in 60 ticks: 1m work, 1m short break, 2m long break,
// long break every 2 work sessions.
func shortConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Timer.WorkDuration = config.Duration(1 * time.Minute)
	cfg.Timer.ShortBreak = config.Duration(1 * time.Minute)
	cfg.Timer.LongBreak = config.Duration(2 * time.Minute)
	cfg.Timer.CyclesUntilLong = 2
	return cfg
}

func setupServices(t *testing.T, cfg *config.Config) (*testServices, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	tasks := services.NewTaskService(store)
	settings := services.NewSettingsService(cfg)
	timer := services.NewTimerService(store, tasks, settings)
	state := services.NewStateService(store)
	state.SetTaskService(tasks)
	state.SetTimerService(timer)

	cleanup := func() {
		store.Close()
		os.Remove(dbPath)
	}

	return &testServices{
		store:    store,
		tasks:    tasks,
		settings: settings,
		timer:    timer,
		state:    state,
	}, cleanup
}

// drainSession starts the countdown and ticks until the session type
// changes.
func drainSession(t *testing.T, ctx context.Context, timer *services.TimerService) {
	t.Helper()

	timer.Start(ctx)
	before := timer.State().Type
	for i := 0; i < 1000; i++ {
		timer.Tick(ctx)
		if timer.State().Type != before {
			return
		}
	}
	t.Fatal("session never completed")
}

// TestWorkSessionPipeline drives one full work session and checks every
// side effect: stats, streak, history, and the active task's tally.
func TestWorkSessionPipeline(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()

	first, err := svcs.tasks.Add(ctx, services.AddTaskRequest{Text: "Write release notes", Estimated: 3})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	second, err := svcs.tasks.Add(ctx, services.AddTaskRequest{Text: "Review PRs", Estimated: 2})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	if err := svcs.tasks.SetActive(ctx, first.ID); err != nil {
		t.Fatalf("failed to set active task: %v", err)
	}

	svcs.timer.Init(ctx)
	drainSession(t, ctx, svcs.timer)

	t.Run("timer advances to a short break", func(t *testing.T) {
		state := svcs.timer.State()
		if state.Type != domain.SessionTypeShortBreak {
			t.Errorf("Type = %v, want short break", state.Type)
		}
		if state.Running {
			t.Error("break should wait for the user when auto-start is off")
		}
		if state.CompletedPomodoros != 1 {
			t.Errorf("CompletedPomodoros = %d, want 1", state.CompletedPomodoros)
		}
	})

	t.Run("daily stats book one pomodoro", func(t *testing.T) {
		day, err := svcs.store.Stats().Day(ctx, domain.DayKey(time.Now()))
		if err != nil {
			t.Fatalf("failed to load daily stats: %v", err)
		}
		if day.Pomodoros != 1 {
			t.Errorf("Pomodoros = %d, want 1", day.Pomodoros)
		}
		if day.FocusMinutes != 1 {
			t.Errorf("FocusMinutes = %d, want 1", day.FocusMinutes)
		}
	})

	t.Run("streak starts at one", func(t *testing.T) {
		if got := svcs.timer.Streak(); got != 1 {
			t.Errorf("Streak() = %d, want 1", got)
		}
	})

	t.Run("history names the active task", func(t *testing.T) {
		entries, err := svcs.store.History().Recent(ctx, 10)
		if err != nil {
			t.Fatalf("failed to load history: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("history has %d entries, want 1", len(entries))
		}
		if entries[0].TaskName != "Write release notes" {
			t.Errorf("TaskName = %q, want %q", entries[0].TaskName, "Write release notes")
		}
		if entries[0].DurationMinutes != 1 {
			t.Errorf("DurationMinutes = %d, want 1", entries[0].DurationMinutes)
		}
	})

	t.Run("only the active task is credited", func(t *testing.T) {
		credited, err := svcs.tasks.Get(ctx, first.ID)
		if err != nil {
			t.Fatalf("failed to load task: %v", err)
		}
		if credited.Actual != 1 {
			t.Errorf("active task Actual = %d, want 1", credited.Actual)
		}

		untouched, err := svcs.tasks.Get(ctx, second.ID)
		if err != nil {
			t.Fatalf("failed to load task: %v", err)
		}
		if untouched.Actual != 0 {
			t.Errorf("other task Actual = %d, want 0", untouched.Actual)
		}
	})

	t.Run("read model agrees", func(t *testing.T) {
		state, err := svcs.state.GetCurrentState(ctx)
		if err != nil {
			t.Fatalf("failed to load current state: %v", err)
		}
		if state.Today.Pomodoros != 1 {
			t.Errorf("Today.Pomodoros = %d, want 1", state.Today.Pomodoros)
		}
		if state.ActiveTask == nil || state.ActiveTask.ID != first.ID {
			t.Error("active task missing from the read model")
		}
		if state.Streak != 1 {
			t.Errorf("Streak = %d, want 1", state.Streak)
		}
		if state.SessionsUntilLong != 1 {
			t.Errorf("SessionsUntilLong = %d, want 1", state.SessionsUntilLong)
		}
	})
}

// TestBreakDoesNotRecord confirms breaks leave stats, history, and
// tasks alone.
func TestBreakDoesNotRecord(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)

	drainSession(t, ctx, svcs.timer)
	drainSession(t, ctx, svcs.timer)

	state := svcs.timer.State()
	if state.Type != domain.SessionTypeWork {
		t.Errorf("Type = %v, want work after the break", state.Type)
	}

	day, err := svcs.store.Stats().Day(ctx, domain.DayKey(time.Now()))
	if err != nil {
		t.Fatalf("failed to load daily stats: %v", err)
	}
	if day.Pomodoros != 1 {
		t.Errorf("Pomodoros = %d, want 1 (the break must not count)", day.Pomodoros)
	}

	entries, err := svcs.store.History().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("history has %d entries, want 1", len(entries))
	}
}

// TestAutoStartChainsBreak checks that with auto-start on, the break
// begins by itself one tick after work ends.
func TestAutoStartChainsBreak(t *testing.T) {
	cfg := shortConfig()
	cfg.UI.AutoStart = true

	svcs, cleanup := setupServices(t, cfg)
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)
	drainSession(t, ctx, svcs.timer)

	state := svcs.timer.State()
	if state.Type != domain.SessionTypeShortBreak {
		t.Fatalf("Type = %v, want short break", state.Type)
	}
	if state.Running {
		t.Error("break should not run before the auto-start fire")
	}
	if !state.AutoStartPending {
		t.Error("AutoStartPending = false, want true")
	}

	svcs.timer.Tick(ctx)

	state = svcs.timer.State()
	if !state.Running {
		t.Error("break should be running after the auto-start fire")
	}
	if state.AutoStartPending {
		t.Error("AutoStartPending should clear once the break starts")
	}
}

// TestSnapshotRestoresPaused covers the restore rule: a snapshot taken
// mid-run comes back paused with its remaining time intact.
func TestSnapshotRestoresPaused(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)
	svcs.timer.Start(ctx)
	for i := 0; i < 10; i++ {
		svcs.timer.Tick(ctx)
	}

	restored := services.NewTimerService(svcs.store, svcs.tasks, svcs.settings)
	restored.Init(ctx)

	state := restored.State()
	if state.Running {
		t.Error("restored timer must be paused")
	}
	if state.Remaining != 50 {
		t.Errorf("Remaining = %d, want 50", state.Remaining)
	}
	if state.Type != domain.SessionTypeWork {
		t.Errorf("Type = %v, want work", state.Type)
	}
}

// TestCorruptSnapshotFallsBack confirms unreadable timer state yields a
// fresh work session instead of an error.
func TestCorruptSnapshotFallsBack(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	if err := svcs.store.State().Set(ctx, "timer_snapshot", "{not json"); err != nil {
		t.Fatalf("failed to seed corrupt state: %v", err)
	}

	svcs.timer.Init(ctx)

	state := svcs.timer.State()
	if state.Type != domain.SessionTypeWork {
		t.Errorf("Type = %v, want work", state.Type)
	}
	if state.Remaining != 60 {
		t.Errorf("Remaining = %d, want 60", state.Remaining)
	}
	if state.Running {
		t.Error("fresh timer must be paused")
	}
}

// TestSkipBreak cuts a break short and verifies work-session skips are
// rejected.
func TestSkipBreak(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)

	if err := svcs.timer.SkipBreak(ctx); err != domain.ErrNotInBreak {
		t.Errorf("SkipBreak during work = %v, want ErrNotInBreak", err)
	}

	drainSession(t, ctx, svcs.timer)
	if err := svcs.timer.SkipBreak(ctx); err != nil {
		t.Fatalf("SkipBreak during break failed: %v", err)
	}

	state := svcs.timer.State()
	if state.Type != domain.SessionTypeWork {
		t.Errorf("Type = %v, want work", state.Type)
	}
	if state.Running {
		t.Error("skipped-into work session should wait for the user")
	}
	if state.Remaining != 60 {
		t.Errorf("Remaining = %d, want the full 60", state.Remaining)
	}
}

// TestLongBreakCadence runs two full work sessions and expects the
// second to land in the long break.
func TestLongBreakCadence(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)

	drainSession(t, ctx, svcs.timer) // work -> short break
	drainSession(t, ctx, svcs.timer) // short break -> work
	drainSession(t, ctx, svcs.timer) // work -> long break

	state := svcs.timer.State()
	if state.Type != domain.SessionTypeLongBreak {
		t.Errorf("Type = %v, want long break", state.Type)
	}
	if state.Remaining != 120 {
		t.Errorf("Remaining = %d, want 120", state.Remaining)
	}
	if state.CompletedPomodoros != 2 {
		t.Errorf("CompletedPomodoros = %d, want 2", state.CompletedPomodoros)
	}
}

// TestSettingsReplanIdleTimer saves new durations and expects the
// paused timer to reload in full while a running one keeps its clock.
func TestSettingsReplanIdleTimer(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()
	svcs.timer.Init(ctx)

	next := svcs.settings.Current()
	next.WorkMinutes = 2

	// The config file write fails without a loaded config; the
	// in-memory settings still apply and the listener still fires.
	svcs.settings.Save(next)

	state := svcs.timer.State()
	if state.Remaining != 120 {
		t.Errorf("idle Remaining = %d, want 120 after re-plan", state.Remaining)
	}

	svcs.timer.Start(ctx)
	for i := 0; i < 5; i++ {
		svcs.timer.Tick(ctx)
	}

	next.WorkMinutes = 3
	svcs.settings.Save(next)

	state = svcs.timer.State()
	if state.Remaining != 115 {
		t.Errorf("running Remaining = %d, want 115 (unchanged by re-plan)", state.Remaining)
	}
}

// TestCompletingActiveTaskClearsSelection ties the task list rules to
// the engine: finishing the active task drops it from the next session.
func TestCompletingActiveTaskClearsSelection(t *testing.T) {
	svcs, cleanup := setupServices(t, shortConfig())
	defer cleanup()

	ctx := context.Background()

	task, err := svcs.tasks.Add(ctx, services.AddTaskRequest{Text: "Fix the flaky test", Estimated: 1})
	if err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	if err := svcs.tasks.SetActive(ctx, task.ID); err != nil {
		t.Fatalf("failed to set active task: %v", err)
	}

	if _, err := svcs.tasks.Toggle(ctx, task.ID); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}

	svcs.timer.Init(ctx)
	drainSession(t, ctx, svcs.timer)

	entries, err := svcs.store.History().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	if entries[0].TaskName != "" {
		t.Errorf("TaskName = %q, want empty after the active task completed", entries[0].TaskName)
	}

	done, err := svcs.tasks.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to load task: %v", err)
	}
	if done.Actual != 0 {
		t.Errorf("completed task Actual = %d, want 0", done.Actual)
	}
}
