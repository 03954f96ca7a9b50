package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// TimerService owns the countdown state machine and reacts to session
// completions: notifications, daily stats, the streak, session history,
// attributing pomodoros to the active task, and auto-start. Every
// mutation, whether a command or a tick, happens under one mutex.
type TimerService struct {
	mu        sync.Mutex
	countdown *domain.Countdown

	storage     ports.Storage
	tasks       *TaskService
	settings    *SettingsService
	notifier    ports.Notifier
	gitDetector ports.GitDetector
	workingDir  string

	streak         int
	lastStreakDate string
	autoStartIn    int

	now      func() time.Time
	onChange func(domain.TimerState)
	onEnd    func(ended, next domain.SessionType)
}

// NewTimerService creates a new timer service.
func NewTimerService(storage ports.Storage, tasks *TaskService, settings *SettingsService) *TimerService {
	return &TimerService{
		storage:   storage,
		tasks:     tasks,
		settings:  settings,
		countdown: domain.NewCountdown(settings.Current().Plan()),
		now:       time.Now,
	}
}

// SetNotifier sets the session-end notifier.
func (s *TimerService) SetNotifier(notifier ports.Notifier) {
	s.notifier = notifier
}

// SetGitDetector sets the detector used to stamp history entries with
// repository context.
func (s *TimerService) SetGitDetector(detector ports.GitDetector, workingDir string) {
	s.gitDetector = detector
	s.workingDir = workingDir
}

// SetOnChange registers the state listener, replacing any previous one.
func (s *TimerService) SetOnChange(fn func(domain.TimerState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetOnSessionEnd registers a callback fired when a session completes,
// before the countdown advances.
func (s *TimerService) SetOnSessionEnd(fn func(ended, next domain.SessionType)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = fn
}

// Init restores the persisted countdown and streak. A restored timer is
// always paused. Corrupt or missing state falls back to a fresh work
// session. Init also registers the service as the settings change
// listener so duration edits re-plan the countdown.
func (s *TimerService) Init(ctx context.Context) {
	settings := s.settings.Current()
	plan := settings.Plan()

	countdown := domain.NewCountdown(plan)
	if raw, ok, err := s.storage.State().Get(ctx, stateKeyTimerSnapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load timer state: %v\n", err)
	} else if ok {
		var snap domain.TimerSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: discarding corrupt timer state: %v\n", err)
		} else {
			countdown = domain.RestoreCountdown(snap, plan)
		}
	}

	streak := 0
	if raw, ok, _ := s.storage.State().Get(ctx, stateKeyStreak); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			streak = n
		}
	}
	lastDate := ""
	if raw, ok, _ := s.storage.State().Get(ctx, stateKeyLastStreakDate); ok {
		lastDate = raw
	}

	s.mu.Lock()
	s.countdown = countdown
	s.streak = domain.ContinuedStreak(streak, lastDate, s.now())
	s.lastStreakDate = lastDate
	s.autoStartIn = 0
	s.mu.Unlock()

	s.settings.SetOnChange(s.applyPlan)
}

// Run drives the countdown with a one-second ticker until the context
// is cancelled. The final snapshot is persisted on the way out.
func (s *TimerService) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.persistSnapshot(context.Background())
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick advances the engine by one loop fire. A pending auto-start
// consumes the fire; otherwise the countdown ticks and a completed
// session runs the end-of-session pipeline.
func (s *TimerService) Tick(ctx context.Context) {
	s.mu.Lock()
	if s.autoStartIn > 0 {
		s.autoStartIn--
		if s.autoStartIn == 0 {
			s.countdown.Start()
		}
		state := s.stateLocked()
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		s.emit(state)
		return
	}

	result := s.countdown.Tick()
	state := s.stateLocked()
	s.mu.Unlock()

	if result.Ended {
		s.completeSession(ctx, result.EndedType)
		return
	}
	if result.Ticked {
		s.persistSnapshot(ctx)
		s.emit(state)
	}
}

// completeSession runs the end-of-session pipeline: announce the
// completed session, record a finished work session, then advance the
// countdown and arm auto-start.
func (s *TimerService) completeSession(ctx context.Context, ended domain.SessionType) {
	settings := s.settings.Current()

	s.mu.Lock()
	next := s.countdown.NextType()
	onEnd := s.onEnd
	s.mu.Unlock()

	// Announce while the countdown still shows the completed type.
	if onEnd != nil {
		onEnd(ended, next)
	}
	if s.notifier != nil {
		if err := s.notifier.SessionEnded(ended, next, sessionMinutes(next, settings)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: notification failed: %v\n", err)
		}
	}

	if ended == domain.SessionTypeWork {
		s.recordWork(ctx, settings)
	}

	s.mu.Lock()
	s.countdown.Advance()
	if ended == domain.SessionTypeWork && settings.AutoStartEnabled {
		s.autoStartIn = 1
	}
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.emit(state)
}

// recordWork books a completed work session: daily stats, the streak,
// a history entry with git context, and the active task's tally. Each
// step is best-effort.
func (s *TimerService) recordWork(ctx context.Context, settings domain.Settings) {
	now := s.now()
	day := domain.DayKey(now)

	stats, err := s.storage.Stats().Day(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load daily stats: %v\n", err)
		stats = &domain.DailyStats{Date: day}
	}
	stats.Pomodoros++
	stats.FocusMinutes += settings.WorkMinutes
	if err := s.storage.Stats().SaveDay(ctx, stats); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save daily stats: %v\n", err)
	}

	s.mu.Lock()
	s.streak = domain.NextStreak(s.streak, s.lastStreakDate, now)
	s.lastStreakDate = day
	streak := s.streak
	s.mu.Unlock()
	if err := s.storage.State().Set(ctx, stateKeyStreak, strconv.Itoa(streak)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save streak: %v\n", err)
	}
	if err := s.storage.State().Set(ctx, stateKeyLastStreakDate, day); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save streak date: %v\n", err)
	}

	entry := &domain.HistoryEntry{
		CompletedAt:     now,
		DurationMinutes: settings.WorkMinutes,
	}
	if task, err := s.tasks.ActiveTask(ctx); err == nil && task != nil {
		entry.TaskName = task.Text
	}
	if s.gitDetector != nil && s.gitDetector.IsAvailable() {
		if info, err := s.gitDetector.Detect(ctx, s.workingDir); err == nil && info != nil {
			entry.Repository = info.Repository
			entry.Branch = info.Branch
		}
	}
	if err := s.storage.History().Append(ctx, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record session history: %v\n", err)
	}

	if _, err := s.tasks.IncrementActive(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update active task: %v\n", err)
	}
}

// Start begins or resumes the countdown, disarming any pending
// auto-start.
func (s *TimerService) Start(ctx context.Context) {
	s.mu.Lock()
	s.autoStartIn = 0
	s.countdown.Start()
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.emit(state)
}

// Resume restarts a paused countdown. Alias of Start.
func (s *TimerService) Resume(ctx context.Context) {
	s.Start(ctx)
}

// Pause stops the countdown, preserving the remaining time.
func (s *TimerService) Pause(ctx context.Context) {
	s.mu.Lock()
	s.autoStartIn = 0
	s.countdown.Pause()
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.emit(state)
}

// Reset pauses the countdown and reloads the full duration of the
// current session type.
func (s *TimerService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.autoStartIn = 0
	s.countdown.Reset()
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.emit(state)
}

// SkipBreak cuts the current break short and returns to a work
// session. Fails with domain.ErrNotInBreak during work.
func (s *TimerService) SkipBreak(ctx context.Context) error {
	s.mu.Lock()
	if err := s.countdown.SkipBreak(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.autoStartIn = 0
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(ctx)
	s.emit(state)
	return nil
}

// State returns the current timer state.
func (s *TimerService) State() domain.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Streak returns the consecutive-day streak as of now. A streak whose
// last completion is older than yesterday reads as zero.
func (s *TimerService) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ContinuedStreak(s.streak, s.lastStreakDate, s.now())
}

// SessionsUntilLong returns how many work completions remain before
// the next long break.
func (s *TimerService) SessionsUntilLong() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SessionsUntilLongBreak(s.countdown.CompletedPomodoros, s.countdown.Plan.CyclesUntilLong)
}

// applyPlan is the settings change listener: new durations re-plan the
// countdown (a paused timer reloads in full, a running one is left
// alone).
func (s *TimerService) applyPlan(settings domain.Settings) {
	s.mu.Lock()
	s.countdown.ApplyPlan(settings.Plan())
	state := s.stateLocked()
	s.mu.Unlock()

	s.persistSnapshot(context.Background())
	s.emit(state)
}

// persistSnapshot saves the countdown, best-effort.
func (s *TimerService) persistSnapshot(ctx context.Context) {
	s.mu.Lock()
	snap := s.countdown.Snapshot(s.now())
	s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.storage.State().Set(ctx, stateKeyTimerSnapshot, string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save timer state: %v\n", err)
	}
}

// emit pushes the given state to the registered listener.
func (s *TimerService) emit(state domain.TimerState) {
	s.mu.Lock()
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}

// stateLocked builds the read model. Callers hold the mutex.
func (s *TimerService) stateLocked() domain.TimerState {
	return domain.TimerState{
		Remaining:          s.countdown.Remaining,
		Total:              s.countdown.Plan.DurationFor(s.countdown.Type),
		Type:               s.countdown.Type,
		Running:            s.countdown.Running,
		CompletedPomodoros: s.countdown.CompletedPomodoros,
		CycleLength:        s.countdown.Plan.CyclesUntilLong,
		AutoStartPending:   s.autoStartIn > 0,
	}
}

// sessionMinutes returns the configured length of a session type.
func sessionMinutes(t domain.SessionType, settings domain.Settings) int {
	switch t {
	case domain.SessionTypeShortBreak:
		return settings.ShortBreakMinutes
	case domain.SessionTypeLongBreak:
		return settings.LongBreakMinutes
	default:
		return settings.WorkMinutes
	}
}
