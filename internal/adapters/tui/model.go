// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// endMsg announces a finished session so the view can flash the transition.
type endMsg struct {
	ended domain.SessionType
	next  domain.SessionType
}

// cmdErrMsg carries a failed command's error into the view.
type cmdErrMsg struct {
	err error
}

// flashExpireMsg clears the transition flash. The id guards against a
// stale expiry wiping a newer flash.
type flashExpireMsg struct {
	id int
}

// errExpireMsg clears the transient error line.
type errExpireMsg struct {
	id int
}

const (
	flashSeconds = 4
	errSeconds   = 3
)

// Model renders the countdown. All state arrives pushed from the engine;
// the model never advances the timer itself.
type Model struct {
	state    *domain.CurrentState
	theme    Theme
	progress progress.Model
	width    int
	height   int

	flash   string
	flashID int

	lastError error
	errID     int

	pickerOpen   bool
	pickerTasks  []*domain.Task
	pickerFilter textinput.Model
	pickerCursor int

	commandCallback func(ports.TimerCommand) error
	fetchTasks      func() []*domain.Task
	onSelectTask    func(id string) error
}

// NewModel creates a new TUI model.
func NewModel(initialState *domain.CurrentState, theme Theme) Model {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.CharLimit = 60
	filter.Width = 30

	return Model{
		state:        initialState,
		theme:        theme,
		progress:     progress.New(progress.WithDefaultGradient()),
		pickerFilter: filter,
	}
}

// Init initializes the TUI. The engine pushes state, so there is no
// tick loop to start here.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.pickerOpen {
			return m.updatePicker(msg)
		}
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case *domain.CurrentState:
		if msg != nil {
			m.state = msg
		}

	case endMsg:
		m.flash = flashText(msg.ended, msg.next)
		m.flashID++
		return m, expireFlashCmd(m.flashID)

	case cmdErrMsg:
		m.lastError = msg.err
		m.errID++
		return m, expireErrCmd(m.errID)

	case flashExpireMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}

	case errExpireMsg:
		if msg.id == m.errID {
			m.lastError = nil
		}
	}

	return m, nil
}

// updateKeys handles the main key bindings.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.dispatch(ports.CmdQuit)
		return m, tea.Quit
	case " ":
		if m.state.Timer.Running || m.state.Timer.AutoStartPending {
			m.dispatch(ports.CmdPause)
		} else {
			m.dispatch(ports.CmdStart)
		}
	case "s":
		m.dispatch(ports.CmdSkip)
	case "r":
		m.dispatch(ports.CmdReset)
	case "n":
		if m.fetchTasks != nil {
			m.pickerTasks = m.fetchTasks()
			m.pickerFilter.Reset()
			m.pickerFilter.Focus()
			m.pickerCursor = 0
			m.pickerOpen = true
			return m, m.pickerFilter.Cursor.BlinkCmd()
		}
	}
	return m, nil
}

// updatePicker handles keys while the task picker overlay is open.
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.pickerOpen = false
		return m, nil
	case "up", "ctrl+p":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.pickerCursor < len(m.visibleTasks()) {
			m.pickerCursor++
		}
		return m, nil
	case "enter":
		id := ""
		if m.pickerCursor > 0 {
			visible := m.visibleTasks()
			if m.pickerCursor-1 < len(visible) {
				id = visible[m.pickerCursor-1].ID
			}
		}
		m.pickerOpen = false
		if m.onSelectTask != nil {
			if err := m.onSelectTask(id); err != nil {
				m.lastError = err
				m.errID++
				return m, expireErrCmd(m.errID)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pickerFilter, cmd = m.pickerFilter.Update(msg)
	if max := len(m.visibleTasks()); m.pickerCursor > max {
		m.pickerCursor = max
	}
	return m, cmd
}

// visibleTasks returns the open tasks matching the picker filter, in
// match-quality order when a filter is set.
func (m Model) visibleTasks() []*domain.Task {
	var open []*domain.Task
	for _, t := range m.pickerTasks {
		if !t.Completed {
			open = append(open, t)
		}
	}

	query := strings.TrimSpace(m.pickerFilter.Value())
	if query == "" {
		return open
	}

	texts := make([]string, len(open))
	for i, t := range open {
		texts[i] = t.Text
	}

	matches := fuzzy.Find(query, texts)
	filtered := make([]*domain.Task, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, open[match.Index])
	}
	return filtered
}

// dispatch forwards a command to the engine. Errors come back
// asynchronously as cmdErrMsg.
func (m *Model) dispatch(cmd ports.TimerCommand) {
	if m.commandCallback != nil {
		_ = m.commandCallback(cmd)
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.pickerOpen {
		return m.viewPicker()
	}

	timer := m.state.Timer

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.Paused)
	helpStyle := lipgloss.NewStyle().Foreground(m.theme.Help)

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Pomo", m.theme.IconApp)))

	// Session label, with the running session number during work
	statusText := domain.GetSessionTypeLabel(timer.Type)
	if timer.Type == domain.SessionTypeWork {
		statusText = fmt.Sprintf("%s · Session %d", statusText, timer.CompletedPomodoros+1)
	}
	sections = append(sections, statusStyle.Render(statusText))

	// Big ASCII timer
	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatSeconds(timer.Remaining), m.timerColor(), m.width))

	if timer.AutoStartPending {
		pendingStyle := lipgloss.NewStyle().Foreground(m.theme.Break)
		sections = append(sections, "")
		sections = append(sections, pendingStyle.Render("Auto-starting... press space to hold"))
	} else if !timer.Running {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(m.theme.Paused).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	// Dynamic progress bar
	sections = append(sections, "")
	pbar := m.progressBar()
	pbar.Width = m.width - 4
	sections = append(sections, pbar.ViewAs(timer.Progress()))

	// Cycle dots: filled for completed sessions in the current cycle
	if timer.CycleLength > 0 {
		sections = append(sections, helpStyle.Render(sessionDots(timer.CompletedPomodoros, timer.CycleLength, timer.Type)))
	}

	// Active task
	if m.state.ActiveTask != nil {
		task := m.state.ActiveTask
		taskStyle := lipgloss.NewStyle().Foreground(m.theme.Task)
		sections = append(sections, "")
		sections = append(sections, taskStyle.Render(fmt.Sprintf("%s %s (%d/%d)", m.theme.IconTask, task.Text, task.Actual, task.Estimated)))
	}

	// Today line
	todayText := fmt.Sprintf("%s Today: %d pomodoros · %d min focus", m.theme.IconStats, m.state.Today.Pomodoros, m.state.Today.FocusMinutes)
	if m.state.Streak > 0 {
		todayText += fmt.Sprintf(" · %s %d day streak", m.theme.IconStreak, m.state.Streak)
	}
	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(todayText))

	if m.flash != "" {
		flashStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Break)
		sections = append(sections, "")
		sections = append(sections, flashStyle.Render(m.flash))
	}

	if m.lastError != nil {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
		sections = append(sections, "")
		sections = append(sections, errStyle.Render(fmt.Sprintf("Error: %v", m.lastError)))
	}

	// Help
	sections = append(sections, "")
	pauseAction := "pause"
	if !timer.Running && !timer.AutoStartPending {
		pauseAction = "start"
	}
	help := fmt.Sprintf("[space] %s  [s]kip break  [r]eset  [n] task  [q]uit", pauseAction)
	sections = append(sections, helpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// viewPicker renders the task selection overlay.
func (m Model) viewPicker() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Title).MarginBottom(1)
	activeStyle := lipgloss.NewStyle().Foreground(m.theme.Work).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.theme.Help)

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s Switch task", m.theme.IconTask)))
	sections = append(sections, m.pickerFilter.View())
	sections = append(sections, "")

	renderRow := func(selected bool, label string) string {
		if selected {
			return activeStyle.Render("▸ " + label)
		}
		return dimStyle.Render("  " + label)
	}

	sections = append(sections, renderRow(m.pickerCursor == 0, "(no task)"))
	for i, task := range m.visibleTasks() {
		label := task.Text
		if m.state.ActiveTask != nil && task.ID == m.state.ActiveTask.ID {
			label += " ●"
		}
		sections = append(sections, renderRow(m.pickerCursor == i+1, label))
	}

	sections = append(sections, "")
	sections = append(sections, dimStyle.Render("↑/↓ navigate · enter select · esc back"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// timerColor returns the big-font color, accounting for pause state.
func (m Model) timerColor() lipgloss.Color {
	timer := m.state.Timer
	if !timer.Running && !timer.AutoStartPending {
		return m.theme.Paused
	}
	if timer.Type.IsBreak() {
		return m.theme.Break
	}
	return m.theme.Work
}

// progressBar builds the gradient bar for the current session state.
func (m Model) progressBar() progress.Model {
	timer := m.state.Timer
	if !timer.Running && !timer.AutoStartPending {
		return progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	}
	if timer.Type.IsBreak() {
		return progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	}
	return progress.New(progress.WithGradient(m.theme.WorkGradientStart, m.theme.WorkGradientEnd))
}

// expireFlashCmd schedules the transition flash to clear.
func expireFlashCmd(id int) tea.Cmd {
	return tea.Tick(flashSeconds*time.Second, func(time.Time) tea.Msg {
		return flashExpireMsg{id: id}
	})
}

// expireErrCmd schedules the transient error line to clear.
func expireErrCmd(id int) tea.Cmd {
	return tea.Tick(errSeconds*time.Second, func(time.Time) tea.Msg {
		return errExpireMsg{id: id}
	})
}

// flashText composes the transition announcement for a finished session.
func flashText(ended, next domain.SessionType) string {
	if ended == domain.SessionTypeWork {
		if next == domain.SessionTypeLongBreak {
			return "Work complete! Long break, you earned it."
		}
		return "Work complete! Time for a short break."
	}
	return "Break over! Back to work."
}

// sessionDots renders the position in the work/break cycle, one dot per
// work session. During the long break itself the cycle shows as full.
func sessionDots(completed, cycles int, current domain.SessionType) string {
	filled := completed % cycles
	if filled == 0 && completed > 0 && current == domain.SessionTypeLongBreak {
		filled = cycles
	}

	dots := make([]string, cycles)
	for i := range dots {
		if i < filled {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}
	return strings.Join(dots, " ")
}

// formatSeconds formats a second count as MM:SS.
func formatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
