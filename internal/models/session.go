package models

import (
	"time"
)

// PomodoroSession represents one timed focus interval on a task
type PomodoroSession struct {
	ID     uint `gorm:"primarykey" json:"id"`
	TaskID uint `gorm:"not null;index" json:"task_id"` // not enforced as a foreign key

	StartTime       time.Time  `gorm:"not null" json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	PlannedDuration int        `gorm:"not null" json:"planned_duration"` // minutes
	ActualDuration  *int       `json:"actual_duration"`                  // minutes, set on completion
	Completed       bool       `gorm:"not null;index" json:"completed"`
}

// Elapsed returns how long the session has been running at now
func (s PomodoroSession) Elapsed(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// Remaining returns the planned time left, never negative
func (s PomodoroSession) Remaining(now time.Time) time.Duration {
	left := time.Duration(s.PlannedDuration)*time.Minute - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Minutes returns the actual duration or 0 when the session is still open
func (s PomodoroSession) Minutes() int {
	if s.ActualDuration == nil {
		return 0
	}
	return *s.ActualDuration
}
