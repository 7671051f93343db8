package models

import (
	"strings"
	"time"
)

// Priority ranks a task; higher values sort first
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusToDo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Task represents a todo item
type Task struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	Title       string   `gorm:"not null" json:"title"`
	Description string   `json:"description"`
	Priority    Priority `gorm:"not null;index" json:"priority"`
	Status      Status   `gorm:"not null" json:"status"`
	DueDate     *string  `gorm:"index" json:"due_date"` // YYYY-MM-DD, nil when unset

	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	ModifiedAt time.Time `gorm:"not null" json:"modified_at"`
}

// String returns the lowercase priority name
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return ""
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority converts "low/medium/high" or "1/2/3" to a Priority
func ParsePriority(priority string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "low", "1":
		return PriorityLow, true
	case "medium", "med", "2":
		return PriorityMedium, true
	case "high", "3":
		return PriorityHigh, true
	default:
		return 0, false
	}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus accepts the stored names plus a few spellings people type
func ParseStatus(status string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "todo", "to-do", "to_do":
		return StatusToDo, true
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	default:
		return "", false
	}
}

// Due returns the due date or an empty string
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}
