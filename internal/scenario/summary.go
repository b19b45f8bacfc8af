package scenario

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxPolicyChanges caps the subjects listed in a policy change summary.
const maxPolicyChanges = 5

// Summary renders a result as the short report shown after a simulation.
func Summary(r Result) string {
	var parts []string
	switch r.Type {
	case TypeDropSubject:
		if r.Dropped != nil {
			parts = append(parts,
				"Scenario: Dropping "+r.Dropped.Name,
				"Freed hours: "+number(r.Dropped.FreedHours),
			)
		}
		parts = append(parts, fmt.Sprintf("Remaining subjects: %d", r.Totals.TotalSubjects))
		if len(r.Deltas) > 0 {
			parts = append(parts, "\nImpact on remaining subjects:")
			for _, d := range r.Deltas {
				if d.HoursDelta == 0 && d.RankDelta == 0 {
					continue
				}
				parts = append(parts, fmt.Sprintf("  • %s: %sh, Rank %s",
					d.SubjectName, signedFixed(d.HoursDelta, 1), signedInt(d.RankDelta)))
			}
		}

	case TypeModifyHours:
		if r.Modified != nil {
			m := r.Modified
			parts = append(parts,
				"Scenario: Modifying hours for "+m.Name,
				fmt.Sprintf("Hours change: %s → %s (%s)", number(m.OldHours), number(m.NewHours), signedNumber(m.HoursDelta)),
			)
		}
		parts = append(parts, fmt.Sprintf("Total available hours: %s (%s)",
			number(r.Totals.TotalAvailableHours), signedNumber(r.Totals.AvailableHoursDelta)))

	case TypeChangePolicy:
		parts = append(parts,
			fmt.Sprintf("Scenario: Changing policy from %s to %s", r.OldPolicyID, r.Policy.ID),
			"Policy: "+r.Policy.Name,
		)
		if len(r.Deltas) > 0 {
			parts = append(parts, "\nPriority changes:")
			for _, d := range topChanges(r.Deltas) {
				parts = append(parts, fmt.Sprintf("  • %s: Priority %s, Rank %s",
					d.SubjectName, signedFixed(d.PriorityDelta, 2), signedInt(d.RankDelta)))
			}
		}
	}
	return strings.Join(parts, "\n")
}

// topChanges keeps the deltas that moved, largest priority swing first.
func topChanges(deltas []Delta) []Delta {
	var changed []Delta
	for _, d := range deltas {
		if d.PriorityDelta != 0 || d.RankDelta != 0 {
			changed = append(changed, d)
		}
	}
	sort.SliceStable(changed, func(i, j int) bool {
		return math.Abs(changed[i].PriorityDelta) > math.Abs(changed[j].PriorityDelta)
	})
	if len(changed) > maxPolicyChanges {
		changed = changed[:maxPolicyChanges]
	}
	return changed
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signedNumber(v float64) string {
	if v > 0 {
		return "+" + number(v)
	}
	return number(v)
}

func signedFixed(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

func signedInt(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
