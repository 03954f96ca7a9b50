package domain

// SessionType identifies which phase of the work/break cycle a countdown is in.
type SessionType string

const (
	SessionTypeWork       SessionType = "work"
	SessionTypeShortBreak SessionType = "short_break"
	SessionTypeLongBreak  SessionType = "long_break"
)

// Valid reports whether the session type is one of the known values.
func (s SessionType) Valid() bool {
	switch s {
	case SessionTypeWork, SessionTypeShortBreak, SessionTypeLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether the session type is a break.
func (s SessionType) IsBreak() bool {
	return s == SessionTypeShortBreak || s == SessionTypeLongBreak
}

// Plan holds the full durations (in seconds) for each session type and the
// work-session count between long breaks.
type Plan struct {
	WorkSeconds       int
	ShortBreakSeconds int
	LongBreakSeconds  int
	CyclesUntilLong   int
}

// DefaultPlan returns the standard pomodoro plan.
func DefaultPlan() Plan {
	return Plan{
		WorkSeconds:       25 * 60,
		ShortBreakSeconds: 5 * 60,
		LongBreakSeconds:  15 * 60,
		CyclesUntilLong:   4,
	}
}

// DurationFor returns the full duration in seconds for a session type.
func (p Plan) DurationFor(t SessionType) int {
	switch t {
	case SessionTypeShortBreak:
		return p.ShortBreakSeconds
	case SessionTypeLongBreak:
		return p.LongBreakSeconds
	default:
		return p.WorkSeconds
	}
}
