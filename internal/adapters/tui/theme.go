package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color palette for the fullscreen timer and the pickers.
// Gradients are kept as hex strings because bubbles/progress wants them raw.
type Theme struct {
	Title  lipgloss.Color
	Work   lipgloss.Color
	Break  lipgloss.Color
	Paused lipgloss.Color
	Task   lipgloss.Color
	Help   lipgloss.Color
	Error  lipgloss.Color

	WorkGradientStart   string
	WorkGradientEnd     string
	BreakGradientStart  string
	BreakGradientEnd    string
	PausedGradientStart string
	PausedGradientEnd   string

	IconApp    string
	IconTask   string
	IconStats  string
	IconStreak string
	IconPaused string
}

// DarkTheme returns the palette tuned for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Title:  lipgloss.Color("#6B7280"),
		Work:   lipgloss.Color("#7C6FE0"),
		Break:  lipgloss.Color("#4ECDC4"),
		Paused: lipgloss.Color("#6B7280"),
		Task:   lipgloss.Color("#A0AEC0"),
		Help:   lipgloss.Color("#95A5A6"),
		Error:  lipgloss.Color("#E06C75"),

		WorkGradientStart:   "#7C6FE0",
		WorkGradientEnd:     "#A78BFA",
		BreakGradientStart:  "#4ECDC4",
		BreakGradientEnd:    "#2ECC71",
		PausedGradientStart: "#6B7280",
		PausedGradientEnd:   "#4B5563",

		IconApp:    "🍅",
		IconTask:   "📋",
		IconStats:  "📊",
		IconStreak: "🔥",
		IconPaused: "⏸",
	}
}

// LightTheme returns the palette tuned for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Title:  lipgloss.Color("#4B5563"),
		Work:   lipgloss.Color("#5B4BC4"),
		Break:  lipgloss.Color("#0F9D8F"),
		Paused: lipgloss.Color("#4B5563"),
		Task:   lipgloss.Color("#4A5568"),
		Help:   lipgloss.Color("#6B7280"),
		Error:  lipgloss.Color("#C0392B"),

		WorkGradientStart:   "#5B4BC4",
		WorkGradientEnd:     "#7C6FE0",
		BreakGradientStart:  "#0F9D8F",
		BreakGradientEnd:    "#27AE60",
		PausedGradientStart: "#4B5563",
		PausedGradientEnd:   "#374151",

		IconApp:    "🍅",
		IconTask:   "📋",
		IconStats:  "📊",
		IconStreak: "🔥",
		IconPaused: "⏸",
	}
}

// ThemeFor picks the palette matching the dark-mode setting.
func ThemeFor(darkMode bool) Theme {
	if darkMode {
		return DarkTheme()
	}
	return LightTheme()
}
