package models

import "time"

// DefaultLevel is used for energy and focus when the user gives none
const DefaultLevel = 5

// MoodEntry is a dated self-report of mood, energy and focus.
// Several entries may share a date.
type MoodEntry struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Date        string `gorm:"not null;index" json:"date"` // YYYY-MM-DD
	Mood        string `gorm:"not null" json:"mood"`
	Notes       string `json:"notes"`
	EnergyLevel int    `gorm:"not null" json:"energy_level"`
	FocusLevel  int    `gorm:"not null" json:"focus_level"`
}

// TableName keeps the collection name short
func (MoodEntry) TableName() string {
	return "moods"
}

// DateLayout is the ISO 8601 calendar date format used for due dates and
// mood entries
const DateLayout = "2006-01-02"

// DaysUntil counts calendar days from now's date to date, negative when date
// is in the past. Both dates are pinned to UTC midnight so a DST shift in
// now's zone cannot shorten a day to 23 hours.
func DaysUntil(date string, now time.Time) (int, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours()) / 24, nil
}
