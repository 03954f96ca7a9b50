// Package cmd wires the pomo services to a cobra command tree. Running
// pomo with no arguments opens a small guided menu; subcommands cover
// the timer, the task list, stats, and exports for shell use.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

// Build information, injected via ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Persistent flags shared by every command.
var (
	dbPath     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "A pomodoro timer for the terminal",
	Long: `Pomo is a pomodoro timer that lives in your terminal.

Work in focused sessions, take real breaks, and keep a task list that
counts your pomodoros for you. Run pomo with no arguments for the
guided menu, or jump straight in with pomo start.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runWizard,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default ~/.pomo/pomo.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON where supported")

	rootCmd.SetVersionTemplate(fmt.Sprintf("pomo\nVersion: {{.Version}}\nBuilt: %s\nCommit: %s\n", BuildDate, GitCommit))
}

// taskAtPosition resolves a 1-based task number, as printed by
// "pomo list", into the task itself.
func taskAtPosition(ctx context.Context, n int) (*domain.Task, error) {
	tasks, err := app.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if n < 1 || n > len(tasks) {
		return nil, fmt.Errorf("no task #%d (the list has %d)", n, len(tasks))
	}
	return tasks[n-1], nil
}

// parseTaskArg is taskAtPosition for string arguments.
func parseTaskArg(ctx context.Context, arg string) (*domain.Task, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("task number must be an integer, got %q", arg)
	}
	return taskAtPosition(ctx, n)
}

// formatClock renders whole seconds as MM:SS.
func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// formatMinutes renders a minute count compactly: 25m, 1h, 1h30m.
func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	h := mins / 60
	m := mins % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}

// getDir returns the directory portion of a path, handling both
// separators so --db works the same everywhere.
func getDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			if i == 0 {
				return path[:1]
			}
			return path[:i]
		}
	}
	return "."
}
