package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history and tasks",
	Long: `Write the session log and the task list to stdout. Markdown carries
both sections; CSV carries the session log with one row per session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		entries, err := app.state.GetRecentSessions(ctx, domain.HistoryCap)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		tasks, err := app.tasks.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}

		switch exportFormat {
		case "csv":
			return exportCSV(cmd.OutOrStdout(), entries)
		case "md", "markdown":
			return exportMarkdown(cmd.OutOrStdout(), entries, tasks)
		default:
			return fmt.Errorf("unknown format %q (want csv or md)", exportFormat)
		}
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: csv or md")
	rootCmd.AddCommand(exportCmd)
}

func exportCSV(out io.Writer, entries []*domain.HistoryEntry) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"date", "time", "duration_min", "task", "repository", "branch"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		record := []string{
			e.CompletedAt.Format("2006-01-02"),
			e.CompletedAt.Format("15:04"),
			strconv.Itoa(e.DurationMinutes),
			e.TaskName,
			e.Repository,
			e.Branch,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

func exportMarkdown(out io.Writer, entries []*domain.HistoryEntry, tasks []*domain.Task) error {
	fmt.Fprintln(out, "# pomo export")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Generated: %s\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Sessions")
	fmt.Fprintln(out)
	if len(entries) == 0 {
		fmt.Fprintln(out, "_No sessions recorded._")
	}
	for _, e := range entries {
		line := fmt.Sprintf("- %s, %d min", e.CompletedAt.Format("2006-01-02 15:04"), e.DurationMinutes)
		if e.TaskName != "" {
			line += ", " + e.TaskName
		}
		if e.Repository != "" {
			ref := e.Repository
			if e.Branch != "" {
				ref += "@" + e.Branch
			}
			line += fmt.Sprintf(" (`%s`)", ref)
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Tasks")
	fmt.Fprintln(out)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "_No tasks._")
	}
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(out, "- [%s] %s (%d/%d)\n", box, t.Text, t.Actual, t.Estimated)
	}
	return nil
}
