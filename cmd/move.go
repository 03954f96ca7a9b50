package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [number] [position]",
	Short: "Move a task to a new position",
	Long:  `Reorder the list: move the task at [number] to [position]. Both are 1-based "pomo list" numbers; out-of-range positions clamp to the ends.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := parseTaskArg(ctx, args[0])
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position must be an integer, got %q", args[1])
		}

		if err := app.tasks.MoveTo(ctx, task.ID, pos-1); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		fmt.Printf("↕  Moved: %s\n", task.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}
