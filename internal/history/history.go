// Package history aggregates recorded execution logs against the current
// weekly plans into the per-subject summaries the scoring engines consume.
package history

import (
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
)

// Summary is a subject's execution record measured against a plan.
type Summary = models.ExecutionSummary

// Build summarizes every planned subject that has at least one log entry.
// Deviations are measured against the plan's current recommendation, not the
// recommendation in force when the week was logged.
func Build(plans []models.WeeklyPlan, logs []models.WeeklyExecutionLog) map[string]Summary {
	out := make(map[string]Summary, len(plans))
	for _, plan := range plans {
		entries := models.EntriesFor(logs, plan.SubjectID)
		if len(entries) == 0 {
			continue
		}

		actual := make([]float64, len(entries))
		deviations := make([]float64, len(entries))
		for i, e := range entries {
			actual[i] = e.ActualHours
			deviations[i] = e.ActualHours - plan.RecommendedHours
		}

		out[plan.SubjectID] = Summary{
			SubjectID:        plan.SubjectID,
			AvgActualHours:   stats.Mean(actual),
			RecommendedHours: plan.RecommendedHours,
			DataPoints:       len(entries),
			Deviations:       deviations,
		}
	}
	return out
}

// Lookup returns a pointer to the subject's summary, or nil when it has none.
func Lookup(summaries map[string]Summary, subjectID string) *Summary {
	s, ok := summaries[subjectID]
	if !ok {
		return nil
	}
	return &s
}

// PriorityScores flattens the subject's score from every snapshot, oldest
// first.
func PriorityScores(snapshots []models.PrioritySnapshot, subjectID string) []float64 {
	var scores []float64
	for _, snap := range snapshots {
		for _, r := range snap.Results {
			if r.SubjectID == subjectID {
				scores = append(scores, r.PriorityScore)
			}
		}
	}
	return scores
}

// RiskScores returns the subject's risk score from every snapshot, oldest
// first.
func RiskScores(snapshots []models.RiskSnapshot, subjectID string) []float64 {
	var scores []float64
	for _, snap := range snapshots {
		for _, r := range snap.Risks {
			if r.SubjectID == subjectID {
				scores = append(scores, r.RiskScore)
			}
		}
	}
	return scores
}
