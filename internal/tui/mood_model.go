package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/steady/internal/models"
)

// MoodPresets are offered as completions in the mood step
var MoodPresets = []string{"Good", "Neutral", "Bad", "Stressed", "Euphoric"}

// Step represents the current step in the wizard
type Step int

const (
	StepMood Step = iota
	StepEnergy
	StepFocus
	StepNotes
	StepSave
)

var stepLabels = []string{"Mood", "Energy", "Focus", "Notes", "Save"}

// MoodForm is the data collected by the wizard
type MoodForm struct {
	Mood        string
	EnergyLevel int
	FocusLevel  int
	Notes       string
}

// MoodFormModel is a step-by-step wizard for a mood journal entry
type MoodFormModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	suggestion    string // from the emotion classifier, may be empty
	presetIndex   int
	validationErr string

	completed bool
	cancelled bool
}

// NewMoodFormModel creates the wizard. suggestion prefills the mood step.
func NewMoodFormModel(suggestion string) MoodFormModel {
	inputs := make([]textinput.Model, int(StepSave))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepMood].Placeholder = strings.Join(MoodPresets, ", ") + " (tab cycles)"
	inputs[StepMood].CharLimit = 40
	inputs[StepMood].Focus()

	inputs[StepEnergy].Placeholder = "1-10 (Enter for 5)"
	inputs[StepEnergy].CharLimit = 2

	inputs[StepFocus].Placeholder = "1-10 (Enter for 5)"
	inputs[StepFocus].CharLimit = 2

	inputs[StepNotes].Placeholder = "How are you feeling? (Enter to skip)"
	inputs[StepNotes].CharLimit = 500

	if suggestion != "" {
		inputs[StepMood].SetValue(suggestion)
	}

	return MoodFormModel{
		currentStep: StepMood,
		inputs:      inputs,
		suggestion:  suggestion,
		presetIndex: -1,
	}
}

// Completed reports whether the user saved the entry
func (m MoodFormModel) Completed() bool { return m.completed }

// Cancelled reports whether the user left without saving
func (m MoodFormModel) Cancelled() bool { return m.cancelled }

// Form returns the collected values. Empty levels become the default.
func (m MoodFormModel) Form() MoodForm {
	energy, _ := parseLevel(m.inputs[StepEnergy].Value())
	focus, _ := parseLevel(m.inputs[StepFocus].Value())
	return MoodForm{
		Mood:        strings.TrimSpace(m.inputs[StepMood].Value()),
		EnergyLevel: energy,
		FocusLevel:  focus,
		Notes:       strings.TrimSpace(m.inputs[StepNotes].Value()),
	}
}

// parseLevel accepts 1-10; empty input means the default level
func parseLevel(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.DefaultLevel, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 10 {
		return models.DefaultLevel, fmt.Errorf("enter a number from 1 to 10")
	}
	return n, nil
}

// Init initializes the model
func (m MoodFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m MoodFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := min(max(m.width/2-10, 20), 60)
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter", "down":
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()

		case "tab":
			if m.currentStep == StepMood {
				m.presetIndex = (m.presetIndex + 1) % len(MoodPresets)
				m.inputs[StepMood].SetValue(MoodPresets[m.presetIndex])
				m.inputs[StepMood].CursorEnd()
				return m, nil
			}
			return m.nextStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

// validate checks the current step before moving on
func (m MoodFormModel) validate() string {
	switch m.currentStep {
	case StepMood:
		if strings.TrimSpace(m.inputs[StepMood].Value()) == "" {
			return "Mood is required"
		}
	case StepEnergy, StepFocus:
		if _, err := parseLevel(m.inputs[m.currentStep].Value()); err != nil {
			return stepLabels[m.currentStep] + ": " + err.Error()
		}
	}
	return ""
}

func (m MoodFormModel) nextStep() (tea.Model, tea.Cmd) {
	if m.validationErr = m.validate(); m.validationErr != "" {
		return m, nil
	}

	if m.currentStep == StepSave {
		m.completed = true
		return m, tea.Quit
	}

	m.inputs[m.currentStep].Blur()
	m.currentStep++
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

func (m MoodFormModel) prevStep() (tea.Model, tea.Cmd) {
	if m.currentStep == StepMood {
		return m, nil
	}
	m.validationErr = ""
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
	}
	m.currentStep--
	m.inputs[m.currentStep].Focus()
	return m, textinput.Blink
}

// View renders the TUI
func (m MoodFormModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	wizard := m.renderWizard()
	if m.width < 80 {
		return wizard
	}

	leftWidth := m.width/2 - 2
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(max(m.height-2, 1)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1).
		Render(wizard)
	right := lipgloss.NewStyle().
		Width(m.width - leftWidth - 4).
		Padding(1).
		Render(m.renderPreview())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m MoodFormModel) renderWizard() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render("🧠 How are you today?"))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	completed := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep:
			b.WriteString(completed.Render("✓ " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepMood:
		b.WriteString("🎭 Mood\n")
		if m.suggestion != "" {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondaryText)).
				Italic(true).
				Render(fmt.Sprintf("Detected: %s", m.suggestion)))
			b.WriteString("\n")
		}
	case StepEnergy:
		b.WriteString("⚡ Energy level\n")
	case StepFocus:
		b.WriteString("🎯 Focus level\n")
	case StepNotes:
		b.WriteString("📝 Notes\n")
	case StepSave:
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Bold(true).
			Render("Press Enter to save this entry"))
	}
	if m.currentStep < StepSave {
		b.WriteString(m.inputs[m.currentStep].View())
	}

	if m.validationErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render("⚠ " + m.validationErr))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("enter next · shift+tab back · esc cancel"))
	return b.String()
}

func (m MoodFormModel) renderPreview() string {
	form := m.Form()
	mood := form.Mood
	if mood == "" {
		mood = "…"
	}

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Render("🎭 " + mood))
	card.WriteString("\n\n")
	card.WriteString(fmt.Sprintf("⚡ Energy %s\n", levelBar(form.EnergyLevel)))
	card.WriteString(fmt.Sprintf("🎯 Focus  %s\n", levelBar(form.FocusLevel)))
	if form.Notes != "" {
		card.WriteString("\n")
		card.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render(form.Notes))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Width(40).
		Render(card.String())
}

// levelBar renders a 1-10 level as ten cells
func levelBar(level int) string {
	level = min(max(level, 0), 10)
	return levelStyle(level).Render(strings.Repeat("●", level)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("○", 10-level)) +
		fmt.Sprintf(" %d", level)
}
