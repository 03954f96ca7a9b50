package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the current session",
	Long:  `Put the timer back at the full duration of the current session type, paused.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.timer.Reset(context.Background())

		state := app.timer.State()
		fmt.Printf("🔄 %s reset to %s.\n",
			domain.GetSessionTypeLabel(state.Type), formatClock(state.Remaining))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
