package utils

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

const msPerDay = 24 * 60 * 60 * 1000

// WeekID names the week containing t as "<year>-W<n>", with
//
//	n = ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7)
//
// where daysSinceJan1 is fractional, measured in elapsed milliseconds from
// local midnight on January 1 of t's year. Weekdays count from Sunday = 0.
// This is not ISO 8601 week numbering; stored logs are keyed by it.
func WeekID(t time.Time) string {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := float64(t.Sub(start).Milliseconds()) / msPerDay
	n := int(math.Ceil((pastDays + float64(start.Weekday()) + 1) / 7))
	return fmt.Sprintf("%d-W%d", t.Year(), n)
}

// ParseWeekID splits a week id into its year and week number.
func ParseWeekID(id string) (year, week int, ok bool) {
	y, w, found := strings.Cut(id, "-W")
	if !found {
		return 0, 0, false
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return 0, 0, false
	}
	week, err = strconv.Atoi(w)
	if err != nil || week < 1 {
		return 0, 0, false
	}
	return year, week, true
}

// ValidateWeekID reports whether id is a well-formed week id.
func ValidateWeekID(id string) bool {
	_, _, ok := ParseWeekID(id)
	return ok
}

// CompareWeekIDs orders week ids chronologically, so 2026-W9 sorts before
// 2026-W10. Ids that do not parse fall back to string order after the ones
// that do.
func CompareWeekIDs(a, b string) int {
	ay, aw, aok := ParseWeekID(a)
	by, bw, bok := ParseWeekID(b)
	switch {
	case aok && bok:
		if ay != by {
			return ay - by
		}
		return aw - bw
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}

// SortedUniqueWeekIDs returns the distinct ids in chronological order.
func SortedUniqueWeekIDs(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortFunc(out, CompareWeekIDs)
	return slices.Compact(out)
}
