package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var startTask int

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the timer",
	Long:  `Start the countdown and open the timer. Use --task to pick the active task by its "pomo list" number first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if startTask > 0 {
			task, err := taskAtPosition(ctx, startTask)
			if err != nil {
				return err
			}
			active, err := app.tasks.ActiveTask(ctx)
			if err != nil {
				return fmt.Errorf("failed to load active task: %w", err)
			}
			if active == nil || active.ID != task.ID {
				if err := app.tasks.SetActive(ctx, task.ID); err != nil {
					return fmt.Errorf("failed to set active task: %w", err)
				}
			}
		}

		app.timer.Start(ctx)
		return launchTimer()
	},
}

func init() {
	startCmd.Flags().IntVarP(&startTask, "task", "t", 0, "Task number (see \"pomo list\") to work on")
	rootCmd.AddCommand(startCmd)
}
