package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction. Index refers
// to the original items slice.
type PickerResult struct {
	Index   int
	Aborted bool
}

type pickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	cursor  int
	aborted bool
	theme   Theme
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title)
	activeStyle := lipgloss.NewStyle().Foreground(m.theme.Work).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Help)
	arrowStyle := lipgloss.NewStyle().Foreground(m.theme.Work).Bold(true)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n\n")

	for i, item := range m.items {
		if i == m.cursor {
			arrow := arrowStyle.Render("▸")
			line := activeStyle.Render(fmt.Sprintf(" %-14s %s", item.Label, item.Desc))
			b.WriteString(fmt.Sprintf("  %s%s\n", arrow, line))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %-14s %s", item.Label, item.Desc)) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter select · esc back") + "\n")

	return b.String()
}

// RunPicker launches an interactive arrow-key picker and returns the
// selected index.
func RunPicker(title string, items []PickerItem, footer string, theme Theme) PickerResult {
	m := pickerModel{
		title:  title,
		items:  items,
		footer: footer,
		theme:  theme,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(pickerModel)
	if final.aborted {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}

// --- Fuzzy filter picker (for task selection) ---

type filterPickerModel struct {
	title   string
	items   []PickerItem
	footer  string
	filter  textinput.Model
	visible []int
	cursor  int
	aborted bool
	theme   Theme
}

func (m filterPickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// refilter recomputes the visible item indices for the current query.
func (m *filterPickerModel) refilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.visible = make([]int, len(m.items))
		for i := range m.items {
			m.visible[i] = i
		}
	} else {
		labels := make([]string, len(m.items))
		for i, item := range m.items {
			labels[i] = item.Label
		}
		matches := fuzzy.Find(query, labels)
		m.visible = make([]int, 0, len(matches))
		for _, match := range matches {
			m.visible = append(m.visible, match.Index)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m filterPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

func (m filterPickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title)
	activeStyle := lipgloss.NewStyle().Foreground(m.theme.Work).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Help)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + "\n")
	b.WriteString("  " + m.filter.View() + "\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no matches") + "\n")
	}
	for pos, idx := range m.visible {
		item := m.items[idx]
		if pos == m.cursor {
			b.WriteString("  " + activeStyle.Render(fmt.Sprintf("▸ %-30s %s", item.Label, item.Desc)) + "\n")
		} else {
			b.WriteString("  " + dimStyle.Render(fmt.Sprintf("  %-30s %s", item.Label, item.Desc)) + "\n")
		}
	}

	if m.footer != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  "+m.footer) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  type to filter · ↑/↓ navigate · enter select · esc back") + "\n")

	return b.String()
}

// RunFilterPicker launches a picker with fuzzy filter-as-you-type and
// returns the selected index into the original items.
func RunFilterPicker(title string, items []PickerItem, footer string, theme Theme) PickerResult {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.CharLimit = 60
	filter.Width = 30
	filter.Focus()

	m := filterPickerModel{
		title:  title,
		items:  items,
		footer: footer,
		filter: filter,
		theme:  theme,
	}
	m.refilter()

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}

	final := result.(filterPickerModel)
	if final.aborted || len(final.visible) == 0 {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.visible[final.cursor]}
}

// --- Styled text prompt ---

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	title   string
	input   textinput.Model
	aborted bool
	theme   Theme
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title)
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Help)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  "+m.title) + " ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  enter confirm · esc back") + "\n")

	return b.String()
}

// RunTextPrompt launches a styled text input prompt.
func RunTextPrompt(title string, placeholder string, theme Theme) TextPromptResult {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()

	m := textPromptModel{
		title: title,
		input: ti,
		theme: theme,
	}

	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}

	final := result.(textPromptModel)
	if final.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(final.input.Value())}
}
