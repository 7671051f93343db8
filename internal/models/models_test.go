package models

import (
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"low", PriorityLow, true},
		{" HIGH ", PriorityHigh, true},
		{"med", PriorityMedium, true},
		{"2", PriorityMedium, true},
		{"3", PriorityHigh, true},
		{"urgent", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParsePriority(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if Priority(4).Valid() || Priority(0).Valid() || !PriorityLow.Valid() {
		t.Fatalf("unexpected Valid results")
	}
	if PriorityHigh.String() != "high" || Priority(9).String() != "" {
		t.Fatalf("unexpected String results")
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"todo":        StatusToDo,
		"In-Progress": StatusInProgress,
		"doing":       StatusInProgress,
		"done":        StatusDone,
	} {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseStatus("blocked"); ok {
		t.Fatalf("blocked should not parse")
	}
	if Status("archived").Valid() {
		t.Fatalf("archived should not be valid")
	}
}

func TestSessionTiming(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := PomodoroSession{StartTime: start, PlannedDuration: 25}

	if got := s.Remaining(start.Add(10 * time.Minute)); got != 15*time.Minute {
		t.Fatalf("expected 15m remaining, got %v", got)
	}
	if got := s.Remaining(start.Add(time.Hour)); got != 0 {
		t.Fatalf("remaining must never be negative, got %v", got)
	}
	if s.Minutes() != 0 {
		t.Fatalf("open session should report 0 minutes")
	}

	end := start.Add(20 * time.Minute)
	actual := 20
	s.EndTime = &end
	s.ActualDuration = &actual
	if got := s.Elapsed(start.Add(time.Hour)); got != 20*time.Minute {
		t.Fatalf("closed session elapsed should stop at end time, got %v", got)
	}
	if s.Minutes() != 20 {
		t.Fatalf("expected 20 minutes, got %d", s.Minutes())
	}
}

func TestDaysUntil(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("zone data unavailable: %v", err)
	}

	tests := []struct {
		now  time.Time
		date string
		want int
	}{
		{time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), "2025-03-11", 1},
		{time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "2025-03-08", -2},
		{time.Date(2025, 3, 29, 10, 0, 0, 0, warsaw), "2025-03-31", 2},
		{time.Date(2025, 10, 25, 10, 0, 0, 0, warsaw), "2025-10-27", 2},
	}
	for _, tt := range tests {
		got, err := DaysUntil(tt.date, tt.now)
		if err != nil || got != tt.want {
			t.Fatalf("DaysUntil(%q, %v) = %d, %v, want %d", tt.date, tt.now, got, err, tt.want)
		}
	}

	if _, err := DaysUntil("not a date", time.Now()); err == nil {
		t.Fatalf("expected an error for a malformed date")
	}
}
