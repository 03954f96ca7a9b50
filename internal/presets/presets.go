// Package presets provides named duration profiles for the setup wizard and
// the config command. A preset only sets the four timing values; toggles and
// sound preferences are left untouched.
package presets

import (
	"fmt"
	"strings"

	"github.com/xvierd/pomo/internal/domain"
)

// Preset is a named combination of session durations and cycle length.
type Preset struct {
	Name              string
	Desc              string
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	CyclesUntilLong   int
}

// Label returns the picker line for this preset, e.g. "Classic  25/5/15 x4".
func (p Preset) Label() string {
	return fmt.Sprintf("%s  %d/%d/%d x%d",
		p.Name, p.WorkMinutes, p.ShortBreakMinutes, p.LongBreakMinutes, p.CyclesUntilLong)
}

// Apply returns a copy of s with the preset's durations in place.
func (p Preset) Apply(s domain.Settings) domain.Settings {
	s.WorkMinutes = p.WorkMinutes
	s.ShortBreakMinutes = p.ShortBreakMinutes
	s.LongBreakMinutes = p.LongBreakMinutes
	s.CyclesUntilLongBreak = p.CyclesUntilLong
	return s.Clamped()
}

// Catalog returns the built-in presets in display order.
func Catalog() []Preset {
	return []Preset{
		{
			Name:              "Classic",
			Desc:              "The standard pomodoro rhythm",
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			CyclesUntilLong:   4,
		},
		{
			Name:              "Deep",
			Desc:              "Longer focus blocks, fewer cycles",
			WorkMinutes:       50,
			ShortBreakMinutes: 10,
			LongBreakMinutes:  25,
			CyclesUntilLong:   2,
		},
		{
			Name:              "Quick",
			Desc:              "Short sprints for scattered days",
			WorkMinutes:       15,
			ShortBreakMinutes: 3,
			LongBreakMinutes:  10,
			CyclesUntilLong:   4,
		},
	}
}

// ByName looks up a preset case-insensitively.
func ByName(name string) (Preset, bool) {
	for _, p := range Catalog() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
