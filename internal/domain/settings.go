package domain

// SoundStyle selects the tone pattern played when a session ends.
type SoundStyle string

const (
	SoundStyleBeep    SoundStyle = "beep"
	SoundStyleBell    SoundStyle = "bell"
	SoundStyleDigital SoundStyle = "digital"
)

// Valid reports whether the sound style is one of the known values.
func (s SoundStyle) Valid() bool {
	switch s {
	case SoundStyleBeep, SoundStyleBell, SoundStyleDigital:
		return true
	}
	return false
}

// Clamp ranges for the numeric settings, in minutes except for cycles.
const (
	MinWorkMinutes       = 1
	MaxWorkMinutes       = 120
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 30
	MinLongBreakMinutes  = 1
	MaxLongBreakMinutes  = 60
	MinCyclesUntilLong   = 2
	MaxCyclesUntilLong   = 12
)

// Settings holds the user preferences driving the timer and its side effects.
type Settings struct {
	WorkMinutes          int
	ShortBreakMinutes    int
	LongBreakMinutes     int
	CyclesUntilLongBreak int
	SoundEnabled         bool
	NotificationsEnabled bool
	AutoStartEnabled     bool
	DarkMode             bool
	SoundStyle           SoundStyle
}

// DefaultSettings returns the standard 25/5/15 pomodoro preferences.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:          25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		CyclesUntilLongBreak: 4,
		SoundEnabled:         true,
		NotificationsEnabled: true,
		AutoStartEnabled:     false,
		DarkMode:             true,
		SoundStyle:           SoundStyleBeep,
	}
}

// Clamped returns a copy with every numeric field forced into its valid range
// and unknown sound styles replaced by the default.
func (s Settings) Clamped() Settings {
	s.WorkMinutes = clampInt(s.WorkMinutes, MinWorkMinutes, MaxWorkMinutes)
	s.ShortBreakMinutes = clampInt(s.ShortBreakMinutes, MinShortBreakMinutes, MaxShortBreakMinutes)
	s.LongBreakMinutes = clampInt(s.LongBreakMinutes, MinLongBreakMinutes, MaxLongBreakMinutes)
	s.CyclesUntilLongBreak = clampInt(s.CyclesUntilLongBreak, MinCyclesUntilLong, MaxCyclesUntilLong)
	if !s.SoundStyle.Valid() {
		s.SoundStyle = SoundStyleBeep
	}
	return s
}

// Plan converts the minute-based settings into the countdown's second-based plan.
func (s Settings) Plan() Plan {
	return Plan{
		WorkSeconds:       s.WorkMinutes * 60,
		ShortBreakSeconds: s.ShortBreakMinutes * 60,
		LongBreakSeconds:  s.LongBreakMinutes * 60,
		CyclesUntilLong:   s.CyclesUntilLongBreak,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
