package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current break",
	Long:  `Cut the running break short and line up the next work session, paused.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := app.timer.SkipBreak(ctx); err != nil {
			if errors.Is(err, domain.ErrNotInBreak) {
				return fmt.Errorf("nothing to skip: the timer is in a work session")
			}
			return fmt.Errorf("failed to skip break: %w", err)
		}

		state := app.timer.State()
		fmt.Printf("⏭  Break skipped. Next: %s (%s)\n",
			domain.GetSessionTypeLabel(state.Type), formatClock(state.Remaining))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipCmd)
}
