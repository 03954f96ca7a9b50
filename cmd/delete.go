package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [number]",
	Short: "Delete a task",
	Long:  `Delete a task by its "pomo list" number. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		task, err := parseTaskArg(ctx, args[0])
		if err != nil {
			return err
		}

		if !jsonOutput {
			fmt.Printf("Delete %q? [y/N] ", task.Text)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := app.tasks.Delete(ctx, task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		if jsonOutput {
			out, err := json.MarshalIndent(map[string]interface{}{
				"deleted": true,
				"id":      task.ID,
				"text":    task.Text,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("🗑  Deleted: %s\n", task.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
