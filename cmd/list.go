package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var (
	listAll    bool
	listDone   bool
	listFilter string
)

var (
	listDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Strikethrough(true)
	listActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List pending tasks in order. The numbers shown here address tasks in
complete, delete, move, and active. Use --all for every task, --done
for finished ones, and --filter to fuzzy match.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		all, err := app.tasks.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		// Numbers stay stable across filtered views.
		numbers := make(map[string]int, len(all))
		for i, t := range all {
			numbers[t.ID] = i + 1
		}

		visible := all
		if listFilter != "" {
			visible, err = app.tasks.Filter(ctx, listFilter)
			if err != nil {
				return fmt.Errorf("failed to filter tasks: %w", err)
			}
		}
		if !listAll {
			shown := make([]*domain.Task, 0, len(visible))
			for _, t := range visible {
				if t.Completed == listDone {
					shown = append(shown, t)
				}
			}
			visible = shown
		}

		active, err := app.tasks.ActiveTask(ctx)
		if err != nil {
			return fmt.Errorf("failed to load active task: %w", err)
		}

		if jsonOutput {
			return printTaskListJSON(visible, numbers, active)
		}

		if len(visible) == 0 {
			switch {
			case listFilter != "":
				fmt.Println("No tasks match.")
			case listDone:
				fmt.Println("No completed tasks.")
			default:
				fmt.Println("No pending tasks. Add one with \"pomo add\".")
			}
			return nil
		}

		fmt.Printf("📋 Tasks (%d):\n\n", len(visible))
		for _, task := range visible {
			fmt.Println(taskLine(task, numbers[task.ID], active != nil && active.ID == task.ID))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include completed tasks")
	listCmd.Flags().BoolVarP(&listDone, "done", "d", false, "Only completed tasks")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Fuzzy match against task text")
	rootCmd.AddCommand(listCmd)
}

func taskLine(task *domain.Task, num int, active bool) string {
	marker := "○"
	text := task.Text
	switch {
	case task.Completed:
		marker = "✓"
		text = listDoneStyle.Render(text)
	case active:
		marker = "▶"
		text = listActiveStyle.Render(text)
	}
	return fmt.Sprintf("  %s %2d. %s (%d/%d)", marker, num, text, task.Actual, task.Estimated)
}

func taskPayload(task *domain.Task) map[string]interface{} {
	payload := map[string]interface{}{
		"id":         task.ID,
		"text":       task.Text,
		"completed":  task.Completed,
		"estimated":  task.Estimated,
		"actual":     task.Actual,
		"created_at": task.CreatedAt.Format(time.RFC3339),
	}
	if task.CompletedAt != nil {
		payload["completed_at"] = task.CompletedAt.Format(time.RFC3339)
	}
	return payload
}

func printTaskListJSON(tasks []*domain.Task, numbers map[string]int, active *domain.Task) error {
	items := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		payload := taskPayload(t)
		payload["number"] = numbers[t.ID]
		payload["active"] = active != nil && active.ID == t.ID
		items = append(items, payload)
	}

	out, err := json.MarshalIndent(map[string]interface{}{
		"tasks": items,
		"count": len(items),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
