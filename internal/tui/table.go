package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/steady/internal/models"
)

const (
	idWidth       = 5
	titleWidth    = 36
	priorityWidth = 8
	statusWidth   = 14
	dueWidth      = 10
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
)

// cell pads (or truncates) text to width, keeping styling out of the count
func cell(text string, width int, style lipgloss.Style) string {
	if lipgloss.Width(text) > width-1 && width > 4 {
		runes := []rune(text)
		if len(runes) > width-4 {
			text = string(runes[:width-4]) + "..."
		}
	}
	return style.Width(width).Render(text)
}

// RenderTaskTable renders tasks in the order given
func RenderTaskTable(tasks []models.Task, now time.Time) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("📋 Tasks"))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(emptyStyle.Render("No tasks found"))
		b.WriteString("\n")
		return b.String()
	}

	plain := lipgloss.NewStyle()
	b.WriteString(cell("ID", idWidth, headerStyle))
	b.WriteString(cell("TITLE", titleWidth, headerStyle))
	b.WriteString(cell("PRIORITY", priorityWidth+1, headerStyle))
	b.WriteString(cell("STATUS", statusWidth, headerStyle))
	b.WriteString(cell("DUE", dueWidth, headerStyle))
	b.WriteString("\n")

	for _, task := range tasks {
		b.WriteString(cell(fmt.Sprintf("#%d", task.ID), idWidth, plain))
		b.WriteString(cell(task.Title, titleWidth, plain))
		b.WriteString(cell(task.Priority.String(), priorityWidth+1, priorityStyle(task.Priority)))
		b.WriteString(cell(statusText(task.Status), statusWidth, statusStyle(task.Status)))
		b.WriteString(cell(dueText(task.Due(), now), dueWidth, dueStyle(task.Due(), now)))
		b.WriteString("\n")
	}
	return b.String()
}

func statusText(status models.Status) string {
	switch status {
	case models.StatusDone:
		return "✓ done"
	case models.StatusInProgress:
		return "▶ in progress"
	default:
		return "○ todo"
	}
}

func statusStyle(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	case models.StatusInProgress:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	}
}

func priorityStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	case models.PriorityLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	}
}

// dueDays returns calendar days from today to due, ok=false when unset
func dueDays(due string, now time.Time) (int, bool) {
	if due == "" {
		return 0, false
	}
	days, err := models.DaysUntil(due, now)
	if err != nil {
		return 0, false
	}
	return days, true
}

func dueText(due string, now time.Time) string {
	days, ok := dueDays(due, now)
	switch {
	case !ok && due == "":
		return "-"
	case !ok:
		return due
	case days < 0:
		return "OVERDUE"
	case days == 0:
		return "TODAY"
	case days == 1:
		return "TOMORROW"
	case days <= 7:
		return fmt.Sprintf("%dd", days)
	default:
		return due
	}
}

func dueStyle(due string, now time.Time) lipgloss.Style {
	days, ok := dueDays(due, now)
	switch {
	case !ok:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	case days < 0:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	case days <= 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	case days <= 7:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	default:
		return lipgloss.NewStyle()
	}
}

// RenderMoodTable renders mood journal entries
func RenderMoodTable(entries []models.MoodEntry) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("🧠 Mood journal"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(emptyStyle.Render("No mood entries found"))
		b.WriteString("\n")
		return b.String()
	}

	plain := lipgloss.NewStyle()
	b.WriteString(cell("ID", idWidth, headerStyle))
	b.WriteString(cell("DATE", 12, headerStyle))
	b.WriteString(cell("MOOD", 14, headerStyle))
	b.WriteString(cell("ENERGY", 8, headerStyle))
	b.WriteString(cell("FOCUS", 7, headerStyle))
	b.WriteString(cell("NOTES", 30, headerStyle))
	b.WriteString("\n")

	for _, e := range entries {
		b.WriteString(cell(fmt.Sprintf("#%d", e.ID), idWidth, plain))
		b.WriteString(cell(e.Date, 12, plain))
		b.WriteString(cell(e.Mood, 14, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))))
		b.WriteString(cell(fmt.Sprintf("%d/10", e.EnergyLevel), 8, levelStyle(e.EnergyLevel)))
		b.WriteString(cell(fmt.Sprintf("%d/10", e.FocusLevel), 7, levelStyle(e.FocusLevel)))
		b.WriteString(cell(e.Notes, 30, lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))))
		b.WriteString("\n")
	}
	return b.String()
}

func levelStyle(level int) lipgloss.Style {
	switch {
	case level >= 8:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	case level <= 3:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	}
}

// RenderSessionTable renders pomodoro sessions
func RenderSessionTable(sessions []models.PomodoroSession) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("🍅 Pomodoro history"))
	b.WriteString("\n\n")

	if len(sessions) == 0 {
		b.WriteString(emptyStyle.Render("No completed sessions yet"))
		b.WriteString("\n")
		return b.String()
	}

	plain := lipgloss.NewStyle()
	b.WriteString(cell("ID", idWidth, headerStyle))
	b.WriteString(cell("TASK", 7, headerStyle))
	b.WriteString(cell("STARTED", 18, headerStyle))
	b.WriteString(cell("PLANNED", 9, headerStyle))
	b.WriteString(cell("ACTUAL", 8, headerStyle))
	b.WriteString("\n")

	for _, s := range sessions {
		actual := "-"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
		if s.ActualDuration != nil {
			actual = fmt.Sprintf("%dm", *s.ActualDuration)
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
			if *s.ActualDuration < s.PlannedDuration {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
			}
		}
		b.WriteString(cell(fmt.Sprintf("#%d", s.ID), idWidth, plain))
		b.WriteString(cell(fmt.Sprintf("#%d", s.TaskID), 7, plain))
		b.WriteString(cell(s.StartTime.Format("2006-01-02 15:04"), 18, plain))
		b.WriteString(cell(fmt.Sprintf("%dm", s.PlannedDuration), 9, plain))
		b.WriteString(cell(actual, 8, style))
		b.WriteString("\n")
	}
	return b.String()
}
