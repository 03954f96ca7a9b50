package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer and today's numbers",
	Long:  `Print the persisted timer state, the active task, today's pomodoros, and the streak.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := app.state.GetCurrentState(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load current state: %w", err)
		}

		if jsonOutput {
			return printStatusJSON(state)
		}
		printStatusText(state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatusText(state *domain.CurrentState) {
	label := domain.GetSessionTypeLabel(state.Timer.Type)
	switch {
	case state.Timer.Running:
		fmt.Printf("🍅 %s, %s remaining\n", label, formatClock(state.Timer.Remaining))
	case state.Timer.AutoStartPending:
		fmt.Printf("🍅 %s, %s, starting shortly\n", label, formatClock(state.Timer.Remaining))
	default:
		fmt.Printf("⏸  %s, %s remaining (paused)\n", label, formatClock(state.Timer.Remaining))
	}
	fmt.Printf("   %d work session(s) until the long break\n", state.SessionsUntilLong)

	if state.ActiveTask != nil {
		fmt.Printf("📋 %s (%d/%d)\n", state.ActiveTask.Text, state.ActiveTask.Actual, state.ActiveTask.Estimated)
	}

	fmt.Printf("📊 Today: %d pomodoro(s), %d focus minutes\n", state.Today.Pomodoros, state.Today.FocusMinutes)
	if state.Streak > 0 {
		fmt.Printf("🔥 Streak: %d day(s)\n", state.Streak)
	}
}

func printStatusJSON(state *domain.CurrentState) error {
	result := map[string]interface{}{
		"timer": map[string]interface{}{
			"remaining":           formatClock(state.Timer.Remaining),
			"remaining_seconds":   state.Timer.Remaining,
			"total_seconds":       state.Timer.Total,
			"session_type":        string(state.Timer.Type),
			"running":             state.Timer.Running,
			"completed_pomodoros": state.Timer.CompletedPomodoros,
			"auto_start_pending":  state.Timer.AutoStartPending,
			"progress":            state.Timer.Progress(),
		},
		"active_task": nil,
		"today": map[string]interface{}{
			"date":          state.Today.Date,
			"pomodoros":     state.Today.Pomodoros,
			"focus_minutes": state.Today.FocusMinutes,
		},
		"streak":              state.Streak,
		"sessions_until_long": state.SessionsUntilLong,
	}
	if state.ActiveTask != nil {
		result["active_task"] = taskPayload(state.ActiveTask)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
