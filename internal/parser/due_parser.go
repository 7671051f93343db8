package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/steady/internal/models"
)

var ErrInvalidDate = errors.New("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, today, tomorrow, X days, or X weeks")

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks)$`)
)

// ParseDueDate parses a due date relative to the current day and returns it
// as YYYY-MM-DD. Supported formats:
// - yyyy-mm-dd (e.g., "2025-12-15")
// - dd/mm/yyyy (e.g., "15/12/2025")
// - today, tomorrow
// - X days (e.g., "3 days", "1day")
// - X weeks (e.g., "2 weeks")
func ParseDueDate(input string) (string, error) {
	return ParseDueDateAt(input, time.Now())
}

// ParseDueDateAt is ParseDueDate with an explicit current time
func ParseDueDateAt(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", nil
	}

	if due, err := time.ParseInLocation(models.DateLayout, input, now.Location()); err == nil {
		return due.Format(models.DateLayout), nil
	}

	if due, err := parseSlashDate(input, now.Location()); err == nil {
		return due.Format(models.DateLayout), nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch input {
	case "today":
		return today.Format(models.DateLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(models.DateLayout), nil
	}

	if due, err := parseRelative(input, today); err == nil {
		return due.Format(models.DateLayout), nil
	}

	return "", ErrInvalidDate
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string, loc *time.Location) (time.Time, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return time.Time{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	due := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)

	// Check if date is valid (handles leap years, etc.)
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	return due, nil
}

// parseRelative parses "X days" or "X weeks" from today
func parseRelative(input string, today time.Time) (time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days":
		if amount < 0 || amount > 365 { // Max 1 year in days
			return time.Time{}, fmt.Errorf("days must be between 0 and 365")
		}
		return today.AddDate(0, 0, amount), nil
	default:
		if amount < 1 || amount > 52 { // Max 1 year in weeks
			return time.Time{}, fmt.Errorf("weeks must be between 1 and 52")
		}
		return today.AddDate(0, 0, amount*7), nil
	}
}

// FormatDueDate formats a YYYY-MM-DD due date for display
func FormatDueDate(due string) string {
	return FormatDueDateAt(due, time.Now())
}

// FormatDueDateAt is FormatDueDate with an explicit current time
func FormatDueDateAt(due string, now time.Time) string {
	if due == "" {
		return ""
	}

	daysDiff, err := models.DaysUntil(due, now)
	if err != nil {
		return due
	}

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", due)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", due)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", due)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", due, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", due)
	}
}
