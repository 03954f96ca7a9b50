package domain

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.WorkMinutes != 25 || s.ShortBreakMinutes != 5 || s.LongBreakMinutes != 15 {
		t.Errorf("durations = %d/%d/%d, want 25/5/15", s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes)
	}

	if s.CyclesUntilLongBreak != 4 {
		t.Errorf("CyclesUntilLongBreak = %v, want 4", s.CyclesUntilLongBreak)
	}

	if s.AutoStartEnabled {
		t.Error("auto-start should default to off")
	}

	if s.SoundStyle != SoundStyleBeep {
		t.Errorf("SoundStyle = %v, want %v", s.SoundStyle, SoundStyleBeep)
	}
}

func TestSettings_Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "all below range",
			in:   Settings{WorkMinutes: 0, ShortBreakMinutes: -1, LongBreakMinutes: 0, CyclesUntilLongBreak: 1, SoundStyle: SoundStyleBell},
			want: Settings{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1, CyclesUntilLongBreak: 2, SoundStyle: SoundStyleBell},
		},
		{
			name: "all above range",
			in:   Settings{WorkMinutes: 500, ShortBreakMinutes: 90, LongBreakMinutes: 600, CyclesUntilLongBreak: 40, SoundStyle: SoundStyleDigital},
			want: Settings{WorkMinutes: 120, ShortBreakMinutes: 30, LongBreakMinutes: 60, CyclesUntilLongBreak: 12, SoundStyle: SoundStyleDigital},
		},
		{
			name: "in range untouched",
			in:   Settings{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 20, CyclesUntilLongBreak: 6, SoundStyle: SoundStyleBeep},
			want: Settings{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 20, CyclesUntilLongBreak: 6, SoundStyle: SoundStyleBeep},
		},
		{
			name: "unknown sound style falls back",
			in:   Settings{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15, CyclesUntilLongBreak: 4, SoundStyle: "airhorn"},
			want: Settings{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15, CyclesUntilLongBreak: 4, SoundStyle: SoundStyleBeep},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettings_Plan(t *testing.T) {
	s := Settings{WorkMinutes: 10, ShortBreakMinutes: 2, LongBreakMinutes: 7, CyclesUntilLongBreak: 3}

	plan := s.Plan()

	if plan.WorkSeconds != 600 {
		t.Errorf("WorkSeconds = %v, want 600", plan.WorkSeconds)
	}

	if plan.ShortBreakSeconds != 120 {
		t.Errorf("ShortBreakSeconds = %v, want 120", plan.ShortBreakSeconds)
	}

	if plan.LongBreakSeconds != 420 {
		t.Errorf("LongBreakSeconds = %v, want 420", plan.LongBreakSeconds)
	}

	if plan.CyclesUntilLong != 3 {
		t.Errorf("CyclesUntilLong = %v, want 3", plan.CyclesUntilLong)
	}
}

func TestSoundStyle_Valid(t *testing.T) {
	valid := []SoundStyle{SoundStyleBeep, SoundStyleBell, SoundStyleDigital}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%v.Valid() = false, want true", s)
		}
	}

	if SoundStyle("klaxon").Valid() {
		t.Error(`SoundStyle("klaxon").Valid() = true, want false`)
	}
}
