package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RunMoodFormTUI runs the mood wizard. ok is false when the user cancelled.
func RunMoodFormTUI(suggestion string) (form MoodForm, ok bool, err error) {
	p := tea.NewProgram(NewMoodFormModel(suggestion), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MoodForm{}, false, err
	}

	m := finalModel.(MoodFormModel)
	if !m.Completed() {
		return MoodForm{}, false, nil
	}
	return m.Form(), true, nil
}
