package domain

import "time"

// HistoryCap is the maximum number of session history entries kept.
const HistoryCap = 50

// DayKeyLayout is the calendar-date format used for stats rows and streak
// bookkeeping.
const DayKeyLayout = "2006-01-02"

// DailyStats aggregates completed work for one calendar date.
type DailyStats struct {
	Date         string
	Pomodoros    int
	FocusMinutes int
}

// HistoryEntry is one completed work session in the append-only history log.
// TaskName, Repository and Branch are optional context captured at completion
// time; empty strings mean absent.
type HistoryEntry struct {
	ID              int64
	CompletedAt     time.Time
	DurationMinutes int
	TaskName        string
	Repository      string
	Branch          string
}

// DayKey returns the calendar-date key for a point in time.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// NextStreak computes the streak after a work completion at now. A second
// completion on the same day leaves the streak unchanged, a completion the
// day after the last streak day increments it, and anything older resets it
// to one.
func NextStreak(current int, lastStreakDate string, now time.Time) int {
	today := DayKey(now)
	yesterday := DayKey(now.AddDate(0, 0, -1))

	switch lastStreakDate {
	case today:
		if current < 1 {
			return 1
		}
		return current
	case yesterday:
		if current < 0 {
			current = 0
		}
		return current + 1
	default:
		return 1
	}
}

// ContinuedStreak evaluates streak continuity at load time: a streak whose
// last day is neither today nor yesterday is broken and reads as zero until
// the next completion starts a new one.
func ContinuedStreak(current int, lastStreakDate string, now time.Time) int {
	today := DayKey(now)
	yesterday := DayKey(now.AddDate(0, 0, -1))

	if lastStreakDate == today || lastStreakDate == yesterday {
		return current
	}
	return 0
}
