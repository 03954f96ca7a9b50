package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/presets"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long:  `Print the current settings. Use "config edit" for an interactive form or "config set" to change one value.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(app.settings.Current())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigForm()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set one setting. Out-of-range numbers are clamped on save. Keys:

  work           work minutes (1-120)
  short_break    short break minutes (1-30)
  long_break     long break minutes (1-60)
  cycles         work sessions per long break (2-12)
  sound          true/false
  sound_style    beep, bell or digital
  notifications  true/false
  auto_start     true/false
  dark_mode      true/false
  preset         classic, deep or quick (sets all four durations)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfigValue(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func printSettings(s domain.Settings) {
	fmt.Println("⚙️  Settings:")
	fmt.Println()
	fmt.Printf("  work           %s\n", formatMinutes(s.WorkMinutes))
	fmt.Printf("  short_break    %s\n", formatMinutes(s.ShortBreakMinutes))
	fmt.Printf("  long_break     %s\n", formatMinutes(s.LongBreakMinutes))
	fmt.Printf("  cycles         %d\n", s.CyclesUntilLongBreak)
	fmt.Printf("  sound          %t\n", s.SoundEnabled)
	fmt.Printf("  sound_style    %s\n", s.SoundStyle)
	fmt.Printf("  notifications  %t\n", s.NotificationsEnabled)
	fmt.Printf("  auto_start     %t\n", s.AutoStartEnabled)
	fmt.Printf("  dark_mode      %t\n", s.DarkMode)
}

func setConfigValue(key, value string) error {
	settings := app.settings.Current()

	switch key {
	case "work", "short_break", "long_break", "cycles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s wants an integer, got %q", key, value)
		}
		switch key {
		case "work":
			settings.WorkMinutes = n
		case "short_break":
			settings.ShortBreakMinutes = n
		case "long_break":
			settings.LongBreakMinutes = n
		case "cycles":
			settings.CyclesUntilLongBreak = n
		}
	case "sound", "notifications", "auto_start", "dark_mode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		switch key {
		case "sound":
			settings.SoundEnabled = b
		case "notifications":
			settings.NotificationsEnabled = b
		case "auto_start":
			settings.AutoStartEnabled = b
		case "dark_mode":
			settings.DarkMode = b
		}
	case "sound_style":
		style := domain.SoundStyle(value)
		if !style.Valid() {
			return fmt.Errorf("sound_style wants beep, bell or digital, got %q", value)
		}
		settings.SoundStyle = style
	case "preset":
		p, ok := presets.ByName(value)
		if !ok {
			return fmt.Errorf("unknown preset %q (want classic, deep or quick)", value)
		}
		settings = p.Apply(settings)
	default:
		return fmt.Errorf("unknown setting %q (see \"pomo config set --help\")", key)
	}

	saved, err := app.settings.Save(settings)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Printf("✅ Saved: %s = %s\n", key, settingValue(saved, key))
	return nil
}

// settingValue formats one setting after save, so clamping is visible.
func settingValue(s domain.Settings, key string) string {
	switch key {
	case "work":
		return strconv.Itoa(s.WorkMinutes)
	case "short_break":
		return strconv.Itoa(s.ShortBreakMinutes)
	case "long_break":
		return strconv.Itoa(s.LongBreakMinutes)
	case "cycles":
		return strconv.Itoa(s.CyclesUntilLongBreak)
	case "sound":
		return strconv.FormatBool(s.SoundEnabled)
	case "sound_style":
		return string(s.SoundStyle)
	case "notifications":
		return strconv.FormatBool(s.NotificationsEnabled)
	case "auto_start":
		return strconv.FormatBool(s.AutoStartEnabled)
	case "dark_mode":
		return strconv.FormatBool(s.DarkMode)
	case "preset":
		return fmt.Sprintf("%d/%d/%d x%d",
			s.WorkMinutes, s.ShortBreakMinutes, s.LongBreakMinutes, s.CyclesUntilLongBreak)
	}
	return ""
}

// runConfigForm edits every setting at once. Values are validated in
// the form and clamped again on save.
func runConfigForm() error {
	settings := app.settings.Current()

	work := strconv.Itoa(settings.WorkMinutes)
	shortBreak := strconv.Itoa(settings.ShortBreakMinutes)
	longBreak := strconv.Itoa(settings.LongBreakMinutes)
	cycles := strconv.Itoa(settings.CyclesUntilLongBreak)
	style := string(settings.SoundStyle)
	sound := settings.SoundEnabled
	notifications := settings.NotificationsEnabled
	autoStart := settings.AutoStartEnabled
	darkMode := settings.DarkMode

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work (minutes)").Value(&work).
				Validate(validateIntRange(domain.MinWorkMinutes, domain.MaxWorkMinutes)),
			huh.NewInput().Title("Short break (minutes)").Value(&shortBreak).
				Validate(validateIntRange(domain.MinShortBreakMinutes, domain.MaxShortBreakMinutes)),
			huh.NewInput().Title("Long break (minutes)").Value(&longBreak).
				Validate(validateIntRange(domain.MinLongBreakMinutes, domain.MaxLongBreakMinutes)),
			huh.NewInput().Title("Work sessions per long break").Value(&cycles).
				Validate(validateIntRange(domain.MinCyclesUntilLong, domain.MaxCyclesUntilLong)),
		).Title("Durations"),
		huh.NewGroup(
			huh.NewConfirm().Title("Desktop notifications").Value(&notifications),
			huh.NewConfirm().Title("Sound").Value(&sound),
			huh.NewSelect[string]().Title("Sound style").
				Options(
					huh.NewOption("Beep", string(domain.SoundStyleBeep)),
					huh.NewOption("Bell", string(domain.SoundStyleBell)),
					huh.NewOption("Digital", string(domain.SoundStyleDigital)),
				).Value(&style),
			huh.NewConfirm().Title("Auto-start the next work session").Value(&autoStart),
			huh.NewConfirm().Title("Dark mode").Value(&darkMode),
		).Title("Behavior"),
	).WithShowHelp(true).WithShowErrors(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("No changes.")
			return nil
		}
		return fmt.Errorf("settings form failed: %w", err)
	}

	settings.WorkMinutes = atoiOr(work, settings.WorkMinutes)
	settings.ShortBreakMinutes = atoiOr(shortBreak, settings.ShortBreakMinutes)
	settings.LongBreakMinutes = atoiOr(longBreak, settings.LongBreakMinutes)
	settings.CyclesUntilLongBreak = atoiOr(cycles, settings.CyclesUntilLongBreak)
	settings.SoundStyle = domain.SoundStyle(style)
	settings.SoundEnabled = sound
	settings.NotificationsEnabled = notifications
	settings.AutoStartEnabled = autoStart
	settings.DarkMode = darkMode

	saved, err := app.settings.Save(settings)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("✅ Settings saved.")
	fmt.Println()
	printSettings(saved)
	return nil
}

func validateIntRange(min, max int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < min || n > max {
			return fmt.Errorf("between %d and %d", min, max)
		}
		return nil
	}
}

func atoiOr(v string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return fallback
}
