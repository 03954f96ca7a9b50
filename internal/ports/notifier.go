package ports

import "github.com/xvierd/pomo/internal/domain"

// Notifier announces session transitions to the user.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// SessionEnded announces that a session of the given type finished
	// and which session comes next. Delivery is best effort.
	SessionEnded(ended domain.SessionType, next domain.SessionType, nextMinutes int) error
}
