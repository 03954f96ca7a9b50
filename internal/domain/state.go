package domain

// TimerState is the countdown as observers see it: the live seconds counter
// plus the full duration of the current session for progress rendering.
type TimerState struct {
	Remaining          int
	Total              int
	Type               SessionType
	Running            bool
	CompletedPomodoros int
	CycleLength        int
	AutoStartPending   bool
}

// CurrentState is the read model assembled for the status command, the TUI
// and the MCP server.
type CurrentState struct {
	Timer             TimerState
	ActiveTask        *Task
	Today             DailyStats
	Streak            int
	SessionsUntilLong int
}

// Progress returns the completed fraction of the current session (0.0 to 1.0).
func (t TimerState) Progress() float64 {
	if t.Total <= 0 {
		return 0
	}
	p := float64(t.Total-t.Remaining) / float64(t.Total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// SessionsUntilLongBreak returns how many work completions remain until the
// next long break, given the completed count and the cycle length.
func SessionsUntilLongBreak(completed, cycles int) int {
	if cycles <= 0 {
		return 0
	}
	return cycles - completed%cycles
}

// GetSessionTypeLabel returns a human-readable label for the session type.
func GetSessionTypeLabel(t SessionType) string {
	switch t {
	case SessionTypeWork:
		return "Work"
	case SessionTypeShortBreak:
		return "Short Break"
	case SessionTypeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}
