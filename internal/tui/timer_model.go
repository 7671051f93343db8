package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/steady/internal/models"
)

// TimerInfo is what the countdown shows next to the clock
type TimerInfo struct {
	Task      models.Task
	Mood      string
	Energy    int
	Focus     int
	Suggested int // advisor minutes, 0 when unknown
}

// TimerOutcome reports how the user left the countdown
type TimerOutcome int

const (
	TimerLeftOpen TimerOutcome = iota // q/esc: the session keeps running
	TimerStopped                      // s: the caller should end the session
)

// TimerModel counts down a running pomodoro session
type TimerModel struct {
	width   int
	height  int
	session models.PomodoroSession
	info    TimerInfo
	now     func() time.Time

	remaining time.Duration
	elapsed   time.Duration

	timerAnimation int

	outcome TimerOutcome
	done    bool
}

type timerTickMsg struct{}

type animationTickMsg struct{}

// NewTimerModel creates a countdown for session
func NewTimerModel(session models.PomodoroSession, info TimerInfo, now func() time.Time) TimerModel {
	if now == nil {
		now = time.Now
	}
	m := TimerModel{
		session: session,
		info:    info,
		now:     now,
	}
	m.refresh()
	return m
}

func (m *TimerModel) refresh() {
	now := m.now()
	m.elapsed = m.session.Elapsed(now)
	m.remaining = m.session.Remaining(now)
}

// Outcome is valid once the program has quit
func (m TimerModel) Outcome() TimerOutcome {
	return m.outcome
}

// Finished reports whether the planned time has run out
func (m TimerModel) Finished() bool {
	return m.remaining == 0
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init starts the tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.refresh()
		if m.done {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if m.done {
			return m, nil
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.outcome = TimerStopped
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.outcome = TimerLeftOpen
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the countdown
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Align(lipgloss.Center).Width(width)
}

func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	animChars := []string{"🍅", "  ", "🍅", "  "}
	header := "FOCUS"
	headerColor := ColorAccentBright
	if m.Finished() {
		header = "TIME'S UP"
		headerColor = ColorSuccess
	}
	components = append(components, centered(width).
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Render(fmt.Sprintf("%s  %s  %s", animChars[m.timerAnimation], header, animChars[m.timerAnimation])))

	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Render(fmt.Sprintf("#%d", m.info.Task.ID)))

	title := m.info.Task.Title
	if width > 8 && len([]rune(title)) > width-4 {
		title = string([]rune(title)[:width-7]) + "..."
	}
	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Render(title))

	clockColor := ColorAccentBright
	if m.Finished() {
		clockColor = ColorSuccess
	}
	var clock []string
	for _, line := range BigClockLines(m.remaining) {
		clock = append(clock, centered(width).
			Foreground(lipgloss.Color(clockColor)).
			Bold(true).
			Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	barWidth := min(width-10, 40)
	components = append(components, centered(width).Render(
		ProgressBar(m.elapsed, m.session.PlannedDuration, barWidth)))

	components = append(components, centered(width).
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(fmt.Sprintf("Started at %s · planned %d min",
			m.session.StartTime.Format("15:04:05"), m.session.PlannedDuration)))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

func (m TimerModel) renderDetailsPanel(width, height int) string {
	task := m.info.Task
	var b strings.Builder

	b.WriteString("\n")
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render(task.Title))
	b.WriteString("\n\n")

	line := func(label, value, color string) {
		b.WriteString(centered(width - 8).Render(fmt.Sprintf("%s %s",
			label, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(value))))
		b.WriteString("\n")
	}

	line("Status:", string(task.Status), ColorSecondaryText)
	line("Priority:", task.Priority.String(), ColorWarning)
	if task.DueDate != nil {
		line("📅 Due:", task.Due(), ColorWarning)
	}
	if task.Description != "" {
		line("📝", task.Description, ColorSecondaryText)
	}

	b.WriteString("\n")
	sep := strings.Repeat("─", max(min(width-12, 40), 0))
	b.WriteString(centered(width - 8).Foreground(lipgloss.Color(ColorBorder)).Render(sep))
	b.WriteString("\n\n")

	if m.info.Mood != "" {
		line("🧠 Mood:", m.info.Mood, ColorAccentBright)
		line("⚡ Energy:", fmt.Sprintf("%d/10", m.info.Energy), ColorAccentBright)
		line("🎯 Focus:", fmt.Sprintf("%d/10", m.info.Focus), ColorAccentBright)
	}
	if m.info.Suggested > 0 {
		line("💡 Suggested:", fmt.Sprintf("%d min", m.info.Suggested), ColorSuccess)
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m TimerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("s stop & save · esc/q exit (keep running) · ctrl+c quit")
}

// ProgressBar renders elapsed/planned as a bar of the given width
func ProgressBar(elapsed time.Duration, plannedMinutes, width int) string {
	if width < 1 {
		return ""
	}
	ratio := 1.0
	if plannedMinutes > 0 {
		ratio = elapsed.Minutes() / float64(plannedMinutes)
	}
	ratio = min(max(ratio, 0), 1)

	filled := int(ratio * float64(width))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, int(ratio*100))
}

// RunTimerTUI shows the countdown until the user stops or leaves it
func RunTimerTUI(session models.PomodoroSession, info TimerInfo) (TimerOutcome, error) {
	p := tea.NewProgram(NewTimerModel(session, info, nil), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return TimerLeftOpen, err
	}
	return finalModel.(TimerModel).Outcome(), nil
}
