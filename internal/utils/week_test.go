package utils

import (
	"slices"
	"testing"
	"time"
)

func TestWeekID(t *testing.T) {
	utc := time.UTC
	// January 1 2026 is a Thursday (weekday 4).
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"new year midnight", time.Date(2026, 1, 1, 0, 0, 0, 0, utc), "2026-W1"},
		{"new year noon", time.Date(2026, 1, 1, 12, 0, 0, 0, utc), "2026-W1"},
		{"friday before boundary", time.Date(2026, 1, 2, 23, 59, 0, 0, utc), "2026-W1"},
		{"saturday midnight is still week one", time.Date(2026, 1, 3, 0, 0, 0, 0, utc), "2026-W1"},
		{"saturday morning rolls over", time.Date(2026, 1, 3, 0, 0, 1, 0, utc), "2026-W2"},
		{"mid march", time.Date(2026, 3, 11, 9, 30, 0, 0, utc), "2026-W11"},
		{"year end", time.Date(2026, 12, 31, 12, 0, 0, 0, utc), "2026-W53"},
		// January 1 2023 is a Sunday (weekday 0).
		{"sunday start", time.Date(2023, 1, 1, 8, 0, 0, 0, utc), "2023-W1"},
		{"sunday start first saturday", time.Date(2023, 1, 7, 8, 0, 0, 0, utc), "2023-W2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekID(tt.at); got != tt.want {
				t.Errorf("WeekID(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestWeekIDUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Friday 23:00 UTC is already Saturday morning in Tokyo.
	at := time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)
	if got := WeekID(at); got != "2026-W1" {
		t.Errorf("UTC WeekID = %q, want 2026-W1", got)
	}
	if got := WeekID(at.In(tokyo)); got != "2026-W2" {
		t.Errorf("Tokyo WeekID = %q, want 2026-W2", got)
	}
}

func TestParseWeekID(t *testing.T) {
	tests := []struct {
		id     string
		year   int
		week   int
		wantOK bool
	}{
		{"2026-W1", 2026, 1, true},
		{"2026-W53", 2026, 53, true},
		{"2026-W0", 0, 0, false},
		{"2026W1", 0, 0, false},
		{"abcd-W2", 0, 0, false},
		{"2026-Wx", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			year, week, ok := ParseWeekID(tt.id)
			if ok != tt.wantOK || year != tt.year || week != tt.week {
				t.Errorf("ParseWeekID(%q) = (%d, %d, %v), want (%d, %d, %v)", tt.id, year, week, ok, tt.year, tt.week, tt.wantOK)
			}
			if ValidateWeekID(tt.id) != tt.wantOK {
				t.Errorf("ValidateWeekID(%q) = %v", tt.id, !tt.wantOK)
			}
		})
	}
}

func TestSortedUniqueWeekIDs(t *testing.T) {
	in := []string{"2026-W10", "2026-W9", "2025-W52", "custom", "2026-W9", "2026-W1"}
	got := SortedUniqueWeekIDs(in)
	want := []string{"2025-W52", "2026-W1", "2026-W9", "2026-W10", "custom"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedUniqueWeekIDs() = %v, want %v", got, want)
	}
	if in[0] != "2026-W10" {
		t.Error("input was reordered")
	}
}
