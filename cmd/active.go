package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var activeCmd = &cobra.Command{
	Use:   "active [number]",
	Short: "Set the task you're working on",
	Long: `Mark a task active by its "pomo list" number; finished work sessions
count against it. Selecting the active task again clears the selection.
Run without arguments to show the current pick.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 0 {
			active, err := app.tasks.ActiveTask(ctx)
			if err != nil {
				return fmt.Errorf("failed to load active task: %w", err)
			}
			if active == nil {
				fmt.Println("No active task.")
				return nil
			}
			fmt.Printf("▶ %s (%d/%d)\n", active.Text, active.Actual, active.Estimated)
			return nil
		}

		task, err := parseTaskArg(ctx, args[0])
		if err != nil {
			return err
		}

		if err := app.tasks.SetActive(ctx, task.ID); err != nil {
			if errors.Is(err, domain.ErrTaskCompleted) {
				return fmt.Errorf("%q is completed; reopen it first with \"pomo complete\"", task.Text)
			}
			return fmt.Errorf("failed to set active task: %w", err)
		}

		active, err := app.tasks.ActiveTask(ctx)
		if err != nil {
			return fmt.Errorf("failed to load active task: %w", err)
		}
		if active != nil && active.ID == task.ID {
			fmt.Printf("▶ Working on: %s\n", task.Text)
		} else {
			fmt.Println("○ Active task cleared.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(activeCmd)
}
