package services

import (
	"testing"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

func TestSettingsService_Current(t *testing.T) {
	service := NewSettingsService(config.DefaultConfig())

	settings := service.Current()
	if settings.WorkMinutes != 25 {
		t.Errorf("WorkMinutes = %d, want 25", settings.WorkMinutes)
	}
	if settings.CyclesUntilLongBreak != 4 {
		t.Errorf("CyclesUntilLongBreak = %d, want 4", settings.CyclesUntilLongBreak)
	}
}

func TestSettingsService_SaveClamps(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	service := NewSettingsService(config.DefaultConfig())

	var heard domain.Settings
	service.SetOnChange(func(s domain.Settings) { heard = s })

	wild := service.Current()
	wild.WorkMinutes = 999
	wild.ShortBreakMinutes = 0
	wild.CyclesUntilLongBreak = 100
	wild.SoundStyle = domain.SoundStyle("airhorn")

	saved, err := service.Save(wild)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if saved.WorkMinutes != domain.MaxWorkMinutes {
		t.Errorf("WorkMinutes = %d, want %d", saved.WorkMinutes, domain.MaxWorkMinutes)
	}
	if saved.ShortBreakMinutes != domain.MinShortBreakMinutes {
		t.Errorf("ShortBreakMinutes = %d, want %d", saved.ShortBreakMinutes, domain.MinShortBreakMinutes)
	}
	if saved.CyclesUntilLongBreak != domain.MaxCyclesUntilLong {
		t.Errorf("CyclesUntilLongBreak = %d, want %d", saved.CyclesUntilLongBreak, domain.MaxCyclesUntilLong)
	}
	if saved.SoundStyle != domain.SoundStyleBeep {
		t.Errorf("SoundStyle = %v, want fallback beep", saved.SoundStyle)
	}

	if heard.WorkMinutes != domain.MaxWorkMinutes {
		t.Errorf("listener heard WorkMinutes = %d, want the clamped value", heard.WorkMinutes)
	}

	if service.Current().WorkMinutes != domain.MaxWorkMinutes {
		t.Errorf("Current() WorkMinutes = %d, want the saved value", service.Current().WorkMinutes)
	}
}

func TestSettingsService_SingleListener(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	service := NewSettingsService(config.DefaultConfig())

	firstCalls := 0
	service.SetOnChange(func(domain.Settings) { firstCalls++ })

	secondCalls := 0
	service.SetOnChange(func(domain.Settings) { secondCalls++ })

	if _, err := service.Save(service.Current()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if firstCalls != 0 {
		t.Errorf("replaced listener fired %d times, want 0", firstCalls)
	}
	if secondCalls != 1 {
		t.Errorf("current listener fired %d times, want 1", secondCalls)
	}
}

func TestSettingsService_Toggles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name      string
		toggle    func(*SettingsService) (domain.Settings, error)
		read      func(domain.Settings) bool
		afterOnce bool
	}{
		{
			name:      "sound defaults on, toggles off",
			toggle:    (*SettingsService).ToggleSound,
			read:      func(s domain.Settings) bool { return s.SoundEnabled },
			afterOnce: false,
		},
		{
			name:      "notifications default on, toggle off",
			toggle:    (*SettingsService).ToggleNotifications,
			read:      func(s domain.Settings) bool { return s.NotificationsEnabled },
			afterOnce: false,
		},
		{
			name:      "auto-start defaults off, toggles on",
			toggle:    (*SettingsService).ToggleAutoStart,
			read:      func(s domain.Settings) bool { return s.AutoStartEnabled },
			afterOnce: true,
		},
		{
			name:      "dark mode defaults on, toggles off",
			toggle:    (*SettingsService).ToggleDarkMode,
			read:      func(s domain.Settings) bool { return s.DarkMode },
			afterOnce: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(config.DefaultConfig())

			settings, err := tt.toggle(service)
			if err != nil {
				t.Fatalf("toggle error = %v", err)
			}
			if tt.read(settings) != tt.afterOnce {
				t.Errorf("after one toggle = %v, want %v", tt.read(settings), tt.afterOnce)
			}

			settings, err = tt.toggle(service)
			if err != nil {
				t.Fatalf("second toggle error = %v", err)
			}
			if tt.read(settings) == tt.afterOnce {
				t.Error("second toggle should restore the starting value")
			}
			if tt.read(service.Current()) == tt.afterOnce {
				t.Error("Current() should reflect the second toggle")
			}
		})
	}
}
