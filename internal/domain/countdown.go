package domain

import (
	"errors"
	"time"
)

// Countdown errors.
var (
	ErrNotInBreak = errors.New("can only skip during a break")
)

// Countdown is the timer state machine. It counts whole seconds: every call
// to Tick while running lowers Remaining by exactly one. Reaching zero pauses
// the machine and reports the completed session type; the caller notifies its
// listeners and then calls Advance to move to the next session. The machine
// itself performs no I/O and holds no callbacks.
type Countdown struct {
	Remaining          int
	Type               SessionType
	Running            bool
	CompletedPomodoros int
	Plan               Plan
}

// TickResult describes what a single tick did.
type TickResult struct {
	Ticked    bool
	Ended     bool
	EndedType SessionType
}

// TimerSnapshot is the persisted form of a countdown. Restoring one always
// yields a paused machine regardless of the stored running flag.
type TimerSnapshot struct {
	Remaining          int         `json:"remaining"`
	Type               SessionType `json:"session_type"`
	CompletedPomodoros int         `json:"completed_pomodoros"`
	Running            bool        `json:"running"`
	SavedAt            time.Time   `json:"saved_at"`
}

// NewCountdown creates a paused work countdown with the plan's full work duration.
func NewCountdown(plan Plan) *Countdown {
	return &Countdown{
		Remaining: plan.DurationFor(SessionTypeWork),
		Type:      SessionTypeWork,
		Plan:      plan,
	}
}

// RestoreCountdown rebuilds a countdown from a snapshot. Durations come from
// the given plan, not the snapshot. Unknown types and out-of-range remaining
// values fall back to a fresh countdown for the stored (or initial) type.
func RestoreCountdown(snap TimerSnapshot, plan Plan) *Countdown {
	c := NewCountdown(plan)
	if !snap.Type.Valid() {
		return c
	}

	c.Type = snap.Type
	if snap.CompletedPomodoros > 0 {
		c.CompletedPomodoros = snap.CompletedPomodoros
	}

	full := plan.DurationFor(snap.Type)
	c.Remaining = full
	if snap.Remaining > 0 && snap.Remaining <= full {
		c.Remaining = snap.Remaining
	}
	return c
}

// Snapshot returns the persisted form of the countdown.
func (c *Countdown) Snapshot(now time.Time) TimerSnapshot {
	return TimerSnapshot{
		Remaining:          c.Remaining,
		Type:               c.Type,
		CompletedPomodoros: c.CompletedPomodoros,
		Running:            c.Running,
		SavedAt:            now,
	}
}

// Start begins the countdown. No-op if already running.
func (c *Countdown) Start() {
	c.Running = true
}

// Pause stops the countdown, preserving the remaining time.
func (c *Countdown) Pause() {
	c.Running = false
}

// Reset pauses the countdown and reloads the full duration for the current
// session type.
func (c *Countdown) Reset() {
	c.Running = false
	c.Remaining = c.Plan.DurationFor(c.Type)
}

// Tick advances the countdown by one second. It does nothing unless running.
// When the remaining time reaches zero the machine pauses itself and reports
// the session type that just completed; it does NOT transition. Callers must
// deliver end notifications before calling Advance so listeners observe the
// completed type.
func (c *Countdown) Tick() TickResult {
	if !c.Running {
		return TickResult{}
	}

	if c.Remaining > 0 {
		c.Remaining--
	}
	if c.Remaining > 0 {
		return TickResult{Ticked: true}
	}

	c.Running = false
	return TickResult{Ticked: true, Ended: true, EndedType: c.Type}
}

// NextType returns the session type Advance would move to.
func (c *Countdown) NextType() SessionType {
	if c.Type != SessionTypeWork {
		return SessionTypeWork
	}
	if c.Plan.CyclesUntilLong > 0 && (c.CompletedPomodoros+1)%c.Plan.CyclesUntilLong == 0 {
		return SessionTypeLongBreak
	}
	return SessionTypeShortBreak
}

// Advance performs the end-of-session transition. Completing a work session
// increments the pomodoro count and moves to a long break every
// CyclesUntilLong completions, otherwise to a short break. Breaks always move
// back to work. The machine is left paused with the full duration of the new
// session type.
func (c *Countdown) Advance() {
	next := c.NextType()
	if c.Type == SessionTypeWork {
		c.CompletedPomodoros++
	}
	c.Type = next
	c.Remaining = c.Plan.DurationFor(next)
	c.Running = false
}

// SkipBreak transitions a break immediately back to work, bypassing the
// countdown. The running flag is preserved and no end event is produced.
// Returns ErrNotInBreak during a work session.
func (c *Countdown) SkipBreak() error {
	if !c.Type.IsBreak() {
		return ErrNotInBreak
	}
	c.Type = SessionTypeWork
	c.Remaining = c.Plan.DurationFor(SessionTypeWork)
	return nil
}

// ApplyPlan installs new durations. While paused the remaining time is reset
// to the full new duration of the current session type; while running the
// active countdown is left untouched and the new durations take effect on the
// next reset or transition.
func (c *Countdown) ApplyPlan(p Plan) {
	c.Plan = p
	if !c.Running {
		c.Remaining = p.DurationFor(c.Type)
	}
}
