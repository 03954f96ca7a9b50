// Package notification provides desktop notification and sound utilities.
package notification

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Notifier delivers end-of-session alerts through beeep. It re-reads the
// current settings on every delivery so toggles take effect immediately.
type Notifier struct {
	settings func() domain.Settings
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a notifier backed by the given settings source.
func New(settings func() domain.Settings) *Notifier {
	return &Notifier{settings: settings}
}

// SessionEnded announces a completed session with a sound and a desktop
// notification, each gated by its own settings toggle.
func (n *Notifier) SessionEnded(ended, next domain.SessionType, nextMinutes int) error {
	s := n.settings()

	var soundErr error
	if s.SoundEnabled {
		soundErr = PlaySound(s.SoundStyle)
	}

	if s.NotificationsEnabled {
		title, message := sessionMessage(ended, next, nextMinutes)
		if err := beeep.Notify(title, message, ""); err != nil {
			return fmt.Errorf("failed to deliver notification: %w", err)
		}
	}

	return soundErr
}

// sessionMessage composes the notification title and body for a session end.
func sessionMessage(ended, next domain.SessionType, nextMinutes int) (string, string) {
	if ended == domain.SessionTypeWork {
		title := "🍅 Pomodoro Complete!"
		if next == domain.SessionTypeLongBreak {
			return title, fmt.Sprintf("Great job! You earned a %d-minute long break.", nextMinutes)
		}
		return title, fmt.Sprintf("Great job! Take a %d-minute break.", nextMinutes)
	}

	title := "☕ Break Over!"
	label := strings.ToLower(domain.GetSessionTypeLabel(ended))
	return title, fmt.Sprintf("Your %s is over. Ready for a %d-minute focus session?", label, nextMinutes)
}

// Tone frequencies in Hz and pulse lengths in milliseconds for each sound style.
const (
	beepFreq     = 587.0
	beepMillis   = 400
	bellHighFreq = 880.0
	bellLowFreq  = 660.0
	bellMillis   = 250
	digitalFreq  = 1047.0
	digitalCount = 3
	digitalOn    = 120
)

// PlaySound plays the terminal tone pattern for the given style. Unknown
// styles fall back to the plain beep.
func PlaySound(style domain.SoundStyle) error {
	switch style {
	case domain.SoundStyleBell:
		if err := beeep.Beep(bellHighFreq, bellMillis); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
		if err := beeep.Beep(bellLowFreq, bellMillis); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
		return nil
	case domain.SoundStyleDigital:
		for i := 0; i < digitalCount; i++ {
			if err := beeep.Beep(digitalFreq, digitalOn); err != nil {
				return fmt.Errorf("failed to play sound: %w", err)
			}
		}
		return nil
	default:
		if err := beeep.Beep(beepFreq, beepMillis); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
		return nil
	}
}
