package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [number]",
	Short: "Toggle a task done or not done",
	Long:  `Mark a task completed by its "pomo list" number. Completing a task again reopens it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := parseTaskArg(ctx, args[0])
		if err != nil {
			return err
		}

		updated, err := app.tasks.Toggle(ctx, task.ID)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		if updated.Completed {
			fmt.Printf("✅ Done: %s\n", updated.Text)
		} else {
			fmt.Printf("○ Reopened: %s\n", updated.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
