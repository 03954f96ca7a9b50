package services

import (
	"fmt"
	"sync"

	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

// SettingsService owns the active settings and persists changes to
// the config file.
type SettingsService struct {
	mu       sync.Mutex
	cfg      *config.Config
	current  domain.Settings
	onChange func(domain.Settings)
}

// NewSettingsService creates a settings service seeded from the
// loaded configuration.
func NewSettingsService(cfg *config.Config) *SettingsService {
	return &SettingsService{
		cfg:     cfg,
		current: cfg.Settings(),
	}
}

// Current returns the active settings.
func (s *SettingsService) Current() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetOnChange registers the single change listener, replacing any
// previous one. The listener fires after a save is applied.
func (s *SettingsService) SetOnChange(fn func(domain.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Save clamps the given settings, applies them, writes the config
// file, and notifies the listener. The in-memory update and the
// notification happen even when the write fails.
func (s *SettingsService) Save(settings domain.Settings) (domain.Settings, error) {
	clamped := settings.Clamped()

	s.mu.Lock()
	s.current = clamped
	s.cfg.ApplySettings(clamped)
	onChange := s.onChange
	s.mu.Unlock()

	var saveErr error
	if err := config.Save(s.cfg); err != nil {
		saveErr = fmt.Errorf("failed to persist settings: %w", err)
	}

	if onChange != nil {
		onChange(clamped)
	}

	return clamped, saveErr
}

// ToggleSound flips completion sounds on or off.
func (s *SettingsService) ToggleSound() (domain.Settings, error) {
	settings := s.Current()
	settings.SoundEnabled = !settings.SoundEnabled
	return s.Save(settings)
}

// ToggleNotifications flips desktop notifications on or off.
func (s *SettingsService) ToggleNotifications() (domain.Settings, error) {
	settings := s.Current()
	settings.NotificationsEnabled = !settings.NotificationsEnabled
	return s.Save(settings)
}

// ToggleAutoStart flips automatic session chaining on or off.
func (s *SettingsService) ToggleAutoStart() (domain.Settings, error) {
	settings := s.Current()
	settings.AutoStartEnabled = !settings.AutoStartEnabled
	return s.Save(settings)
}

// ToggleDarkMode flips the interface theme.
func (s *SettingsService) ToggleDarkMode() (domain.Settings, error) {
	settings := s.Current()
	settings.DarkMode = !settings.DarkMode
	return s.Save(settings)
}
