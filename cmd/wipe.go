package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all stored data",
	Long: `Delete the pomo database: tasks, stats, history, and the timer
snapshot. Settings in config.toml are kept. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeForce {
			fmt.Printf("This deletes ALL pomo data at %s.\n", dbPath)
			fmt.Print("Type \"yes\" to continue: ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		// Close first so sqlite releases the file.
		if app.storage != nil {
			if err := app.storage.Close(); err != nil {
				return fmt.Errorf("failed to close storage: %w", err)
			}
			app.storage = nil
		}

		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete database: %w", err)
		}
		// WAL sidecars would resurrect the data on the next open.
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")

		fmt.Println("🗑  All data deleted.")
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(wipeCmd)
}
