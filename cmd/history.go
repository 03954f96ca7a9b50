package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent work sessions",
	Long:  `List the most recent completed work sessions, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := app.state.GetRecentSessions(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if jsonOutput {
			return printHistoryJSON(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No sessions yet. Finish a work session to see it here.")
			return nil
		}

		fmt.Printf("🍅 Last %d session(s):\n\n", len(entries))
		for _, e := range entries {
			fmt.Println(historyLine(e))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum sessions to show")
	rootCmd.AddCommand(historyCmd)
}

func historyLine(e *domain.HistoryEntry) string {
	line := fmt.Sprintf("  %s  %3d min", e.CompletedAt.Format("Jan 02 15:04"), e.DurationMinutes)
	if e.TaskName != "" {
		line += "  " + e.TaskName
	}
	if e.Repository != "" {
		ref := e.Repository
		if e.Branch != "" {
			ref += "@" + e.Branch
		}
		line += "  [" + ref + "]"
	}
	return line
}

func printHistoryJSON(entries []*domain.HistoryEntry) error {
	sessions := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		session := map[string]interface{}{
			"completed_at":     e.CompletedAt.Format(time.RFC3339),
			"duration_minutes": e.DurationMinutes,
		}
		if e.TaskName != "" {
			session["task_name"] = e.TaskName
		}
		if e.Repository != "" {
			session["repository"] = e.Repository
		}
		if e.Branch != "" {
			session["branch"] = e.Branch
		}
		sessions = append(sessions, session)
	}

	out, err := json.MarshalIndent(map[string]interface{}{
		"sessions": sessions,
		"count":    len(sessions),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
