package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

var addEstimate int

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a task",
	Long: fmt.Sprintf(`Add a task to the end of the list. The estimate is how many pomodoros
you expect it to take (%d-%d).`, domain.MinEstimate, domain.MaxEstimate),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		text := strings.Join(args, " ")

		task, err := app.tasks.Add(ctx, services.AddTaskRequest{Text: text, Estimated: addEstimate})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		if jsonOutput {
			out, err := json.MarshalIndent(taskPayload(task), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal task: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("✅ Task added: %s (estimate: %d)\n", task.Text, task.Estimated)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addEstimate, "estimate", "e", 1, "Estimated pomodoros (1-10)")
	rootCmd.AddCommand(addCmd)
}
