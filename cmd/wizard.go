package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/tui"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/presets"
	"github.com/xvierd/pomo/internal/services"
)

// runWizard is the bare "pomo" entry point: a short menu, an optional
// task pick, then the timer.
func runWizard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if app.config.FirstRun {
		printWelcome()
		app.config.FirstRun = false
		if err := config.Save(app.config); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save config: %v\n", err)
		}
	}

	theme := tui.ThemeFor(app.settings.Current().DarkMode)

	menu := []tui.PickerItem{
		{Label: "Start timer", Desc: "Pick a task and run the countdown"},
		{Label: "View stats", Desc: "Today, streak and the last 7 days"},
		{Label: "Edit settings", Desc: "Durations, sound and auto-start"},
	}
	choice := tui.RunPicker("What now?", menu, "", theme)
	if choice.Aborted {
		return nil
	}

	switch choice.Index {
	case 1:
		return renderStats(ctx)
	case 2:
		return runSettingsMenu(theme)
	}

	proceed, err := pickActiveTask(ctx, theme)
	if err != nil {
		return err
	}
	if !proceed {
		return nil
	}

	return launchTimer()
}

func printWelcome() {
	fmt.Println("🍅 Welcome to pomo!")
	fmt.Println()
	fmt.Println("Work in focused sessions, take real breaks, and keep a task")
	fmt.Println("list that counts your pomodoros for you.")
	fmt.Println()
	fmt.Println("  pomo             this menu")
	fmt.Println("  pomo start       straight to the timer")
	fmt.Println("  pomo add <text>  add a task from the shell")
	fmt.Println("  pomo stats       your numbers")
	fmt.Println()
}

// pickActiveTask shows pending tasks plus "no task" and "new task"
// entries. Returns false when the user backed out.
func pickActiveTask(ctx context.Context, theme tui.Theme) (bool, error) {
	all, err := app.tasks.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load tasks: %w", err)
	}
	active, err := app.tasks.ActiveTask(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load active task: %w", err)
	}

	items := []tui.PickerItem{{Label: "No task", Desc: "Just run the timer"}}
	var pending []*domain.Task
	for _, t := range all {
		if t.Completed {
			continue
		}
		desc := fmt.Sprintf("%d/%d pomodoros", t.Actual, t.Estimated)
		if active != nil && active.ID == t.ID {
			desc += " · active"
		}
		items = append(items, tui.PickerItem{Label: t.Text, Desc: desc})
		pending = append(pending, t)
	}
	items = append(items, tui.PickerItem{Label: "New task...", Desc: "Type one now"})

	settings := app.settings.Current()
	footer := fmt.Sprintf("%s work · %s/%s breaks · long break every %d",
		formatMinutes(settings.WorkMinutes),
		formatMinutes(settings.ShortBreakMinutes),
		formatMinutes(settings.LongBreakMinutes),
		settings.CyclesUntilLongBreak)

	result := tui.RunFilterPicker("Work on:", items, footer, theme)
	if result.Aborted {
		return false, nil
	}

	switch {
	case result.Index == 0:
		if err := app.tasks.ClearActive(ctx); err != nil {
			return false, fmt.Errorf("failed to clear active task: %w", err)
		}
	case result.Index == len(items)-1:
		text := tui.RunTextPrompt("New task:", "What are you working on?", theme)
		if text.Aborted || strings.TrimSpace(text.Value) == "" {
			return false, nil
		}
		task, err := app.tasks.Add(ctx, services.AddTaskRequest{Text: text.Value, Estimated: 1})
		if err != nil {
			return false, fmt.Errorf("failed to add task: %w", err)
		}
		if err := app.tasks.SetActive(ctx, task.ID); err != nil {
			return false, fmt.Errorf("failed to set active task: %w", err)
		}
	default:
		picked := pending[result.Index-1]
		if active == nil || active.ID != picked.ID {
			if err := app.tasks.SetActive(ctx, picked.ID); err != nil {
				return false, fmt.Errorf("failed to set active task: %w", err)
			}
		}
	}

	return true, nil
}

// runSettingsMenu offers the duration presets before falling through
// to the full form.
func runSettingsMenu(theme tui.Theme) error {
	catalog := presets.Catalog()

	items := make([]tui.PickerItem, 0, len(catalog)+1)
	for _, p := range catalog {
		items = append(items, tui.PickerItem{Label: p.Label(), Desc: p.Desc})
	}
	items = append(items, tui.PickerItem{Label: "Custom...", Desc: "Edit every setting"})

	result := tui.RunPicker("Timer preset:", items, "work/short/long minutes x sessions per long break", theme)
	if result.Aborted {
		return nil
	}
	if result.Index == len(items)-1 {
		return runConfigForm()
	}

	applied := catalog[result.Index].Apply(app.settings.Current())
	saved, err := app.settings.Save(applied)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Printf("✅ %s preset applied: %s work, %s/%s breaks, long break every %d.\n",
		catalog[result.Index].Name,
		formatMinutes(saved.WorkMinutes),
		formatMinutes(saved.ShortBreakMinutes),
		formatMinutes(saved.LongBreakMinutes),
		saved.CyclesUntilLongBreak)
	return nil
}
