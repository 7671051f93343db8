package parser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/balkashynov/steady/internal/models"
)

func TestParseDueDateAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2025-12-15", "2025-12-15"},
		{"15/12/2025", "2025-12-15"},
		{"1/2/2026", "2026-02-01"},
		{"today", "2025-03-10"},
		{"Tomorrow", "2025-03-11"},
		{"3 days", "2025-03-13"},
		{"3days", "2025-03-13"},
		{"1 day", "2025-03-11"},
		{"2 weeks", "2025-03-24"},
	}
	for _, tt := range tests {
		got, err := ParseDueDateAt(tt.in, now)
		if err != nil {
			t.Fatalf("ParseDueDateAt(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseDueDateAt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"31/02/2025", "2025-13-01", "soon", "100 weeks", "5 hours"} {
		if _, err := ParseDueDateAt(bad, now); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDueDateAt(%q): expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestFormatDueDateAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := map[string]string{
		"":           "",
		"2025-03-09": "OVERDUE",
		"2025-03-10": "Due today",
		"2025-03-11": "Due tomorrow",
		"2025-03-14": "in 4 days",
		"2025-05-01": "Due 2025-05-01",
		"garbage":    "garbage",
	}
	for in, want := range tests {
		got := FormatDueDateAt(in, now)
		if !strings.Contains(got, want) {
			t.Fatalf("FormatDueDateAt(%q) = %q, want it to contain %q", in, got, want)
		}
	}
}

func TestFormatDueDateAcrossDST(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}
	// clocks move forward on 2025-03-30, so that day is 23 hours long
	now := time.Date(2025, 3, 29, 10, 0, 0, 0, warsaw)

	if got := FormatDueDateAt("2025-03-31", now); !strings.Contains(got, "in 2 days") {
		t.Fatalf("FormatDueDateAt across DST = %q, want it to contain %q", got, "in 2 days")
	}
	if got := FormatDueDateAt("2025-03-30", now); !strings.Contains(got, "Due tomorrow") {
		t.Fatalf("FormatDueDateAt across DST = %q, want it to contain %q", got, "Due tomorrow")
	}
}

func TestParseTitle(t *testing.T) {
	parsed := ParseTitle("Write C++ report +high due:2025-04-01")
	if parsed.Title != "Write C++ report" {
		t.Fatalf("unexpected title %q", parsed.Title)
	}
	if parsed.Priority != models.PriorityHigh || parsed.DueDate != "2025-04-01" || len(parsed.Errors) != 0 {
		t.Fatalf("unexpected parse %+v", parsed)
	}

	plain := ParseTitle("  just   a title ")
	if plain.Title != "just a title" || plain.Priority != 0 || plain.DueDate != "" {
		t.Fatalf("unexpected parse %+v", plain)
	}

	bad := ParseTitle("Fix +urgent due:someday")
	if len(bad.Errors) != 2 {
		t.Fatalf("expected two errors, got %v", bad.Errors)
	}
	if bad.Title != "Fix" {
		t.Fatalf("expected tokens removed from the title, got %q", bad.Title)
	}
}
