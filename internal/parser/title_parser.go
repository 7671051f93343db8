package parser

import (
	"regexp"
	"strings"

	"github.com/balkashynov/steady/internal/models"
)

var (
	priorityRegex = regexp.MustCompile(`(?:^|\s)\+([a-zA-Z0-9]+)`)
	dueRegex      = regexp.MustCompile(`due:([^\s]+)`)
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Priority models.Priority // zero when not given
	DueDate  string          // YYYY-MM-DD, empty when not given
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title +priority due:3days"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Errors: []string{},
	}

	// Extract priority (+high, +3, +medium, etc.)
	priorityMatches := priorityRegex.FindStringSubmatch(input)
	if len(priorityMatches) > 1 {
		if priority, ok := models.ParsePriority(priorityMatches[1]); ok {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+priorityMatches[1]+"'. Use: low, medium, high, 1, 2, or 3")
		}
		// Remove from title
		input = priorityRegex.ReplaceAllString(input, " ")
	}

	// Extract due date (due:3days, due:2025-12-15, etc.)
	dueMatches := dueRegex.FindStringSubmatch(input)
	if len(dueMatches) > 1 {
		dueDate, err := ParseDueDate(dueMatches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+dueMatches[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		// Remove from title
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}
