package services

// Keys used in the app_state table.
const (
	stateKeyActiveTask     = "active_task_id"
	stateKeyStreak         = "streak"
	stateKeyLastStreakDate = "last_streak_date"
	stateKeyTimerSnapshot  = "timer_snapshot"
)
