package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [number] [pomodoros]",
	Short: "Change a task's estimate",
	Long:  `Set how many pomodoros a task should take, by its "pomo list" number. Estimates are clamped to 1-10.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := parseTaskArg(ctx, args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("estimate must be an integer, got %q", args[1])
		}

		updated, err := app.tasks.SetEstimate(ctx, task.ID, n)
		if err != nil {
			return fmt.Errorf("failed to set estimate: %w", err)
		}

		fmt.Printf("✅ %s: estimate is now %d.\n", updated.Text, updated.Estimated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}
