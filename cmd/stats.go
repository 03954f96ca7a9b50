package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
)

var (
	statsTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0")).Bold(true)
	statsDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	statsValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	statsBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C6FE0"))
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus statistics",
	Long:  `A small dashboard: today's pomodoros, the streak, totals, and a bar chart of the last days.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderStats(context.Background())
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Days of history to chart")
	rootCmd.AddCommand(statsCmd)
}

func renderStats(ctx context.Context) error {
	days := statsDays
	if days < 1 {
		days = 7
	}

	stats, err := app.state.GetStats(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	state, err := app.state.GetCurrentState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current state: %w", err)
	}

	if jsonOutput {
		return printStatsJSON(stats, state)
	}

	totalPomodoros, totalMinutes := 0, 0
	for _, day := range stats {
		totalPomodoros += day.Pomodoros
		totalMinutes += day.FocusMinutes
	}

	fmt.Println(statsTitleStyle.Render("🍅 pomo stats"))
	fmt.Println(statsDimStyle.Render(strings.Repeat("─", 40)))
	fmt.Printf("%s %s pomodoros, %s focus\n",
		statsDimStyle.Render(fmt.Sprintf("%-8s", "Today")),
		statsValueStyle.Render(fmt.Sprintf("%d", state.Today.Pomodoros)),
		statsValueStyle.Render(formatMinutes(state.Today.FocusMinutes)))
	fmt.Printf("%s %s day(s)\n",
		statsDimStyle.Render(fmt.Sprintf("%-8s", "Streak")),
		statsValueStyle.Render(fmt.Sprintf("%d", state.Streak)))
	fmt.Printf("%s %s pomodoros, %s focus\n",
		statsDimStyle.Render(fmt.Sprintf("%-8s", fmt.Sprintf("%d days", days))),
		statsValueStyle.Render(fmt.Sprintf("%d", totalPomodoros)),
		statsValueStyle.Render(formatMinutes(totalMinutes)))
	fmt.Println()
	fmt.Println(renderStatsChart(stats, days))
	return nil
}

// renderStatsChart draws one bar per day, oldest on the left, sized to
// the terminal.
func renderStatsChart(stats []*domain.DailyStats, days int) string {
	width := 64
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && w-4 < width {
		width = w - 4
	}
	if width < 20 {
		width = 20
	}

	byDay := make(map[string]*domain.DailyStats, len(stats))
	for _, day := range stats {
		byDay[day.Date] = day
	}

	now := time.Now()
	bars := make([]barchart.BarData, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := domain.DayKey(d)

		value := 0.0
		if day, ok := byDay[key]; ok {
			value = float64(day.Pomodoros)
		}

		label := d.Format("Mon")
		if days > 7 {
			label = d.Format("2")
		}

		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  key,
				Value: value,
				Style: statsBarStyle,
			}},
		})
	}

	chart := barchart.New(width, 10)
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func printStatsJSON(stats []*domain.DailyStats, state *domain.CurrentState) error {
	daysOut := make([]map[string]interface{}, 0, len(stats))
	totalPomodoros, totalMinutes := 0, 0
	for _, day := range stats {
		totalPomodoros += day.Pomodoros
		totalMinutes += day.FocusMinutes
		daysOut = append(daysOut, map[string]interface{}{
			"date":          day.Date,
			"pomodoros":     day.Pomodoros,
			"focus_minutes": day.FocusMinutes,
		})
	}

	out, err := json.MarshalIndent(map[string]interface{}{
		"days":                daysOut,
		"total_pomodoros":     totalPomodoros,
		"total_focus_minutes": totalMinutes,
		"today": map[string]interface{}{
			"date":          state.Today.Date,
			"pomodoros":     state.Today.Pomodoros,
			"focus_minutes": state.Today.FocusMinutes,
		},
		"streak": state.Streak,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
