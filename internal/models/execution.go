package models

import (
	"time"

	"github.com/julianstephens/studypilot/internal/stats"
)

type CompletionStatus string

const (
	StatusCompleted CompletionStatus = "completed"
	StatusPartial   CompletionStatus = "partial"
	StatusSkipped   CompletionStatus = "skipped"
)

// Valid reports whether the status is one of the known values.
func (c CompletionStatus) Valid() bool {
	switch c {
	case StatusCompleted, StatusPartial, StatusSkipped:
		return true
	}
	return false
}

type ExecutionLogEntry struct {
	SubjectID        string           `json:"subject_id" yaml:"subject_id"`
	ActualHours      float64          `json:"actual_hours" yaml:"actual_hours"`
	CompletionStatus CompletionStatus `json:"completion_status" yaml:"completion_status"`
}

// WeeklyExecutionLog records what was actually studied in one week.
// A week is written once and only ever replaced wholesale.
type WeeklyExecutionLog struct {
	WeekID    string              `json:"week_id" yaml:"week_id"`
	Entries   []ExecutionLogEntry `json:"entries" yaml:"entries"`
	Timestamp time.Time           `json:"timestamp" yaml:"timestamp"`
	// PlannedHours is the plan total in force when the week was recorded.
	// Zero for logs recorded before any plan existed.
	PlannedHours float64 `json:"planned_hours,omitempty" yaml:"planned_hours,omitempty"`
}

// TotalActualHours sums the actual hours across all entries of the week.
func (l WeeklyExecutionLog) TotalActualHours() float64 {
	total := 0.0
	for _, e := range l.Entries {
		total += e.ActualHours
	}
	return total
}

// EntriesFor collects every entry for subjectID across logs, in log order.
func EntriesFor(logs []WeeklyExecutionLog, subjectID string) []ExecutionLogEntry {
	var entries []ExecutionLogEntry
	for _, log := range logs {
		for _, e := range log.Entries {
			if e.SubjectID == subjectID {
				entries = append(entries, e)
			}
		}
	}
	return entries
}

// ExecutionSummary is a subject's execution record measured against one plan.
type ExecutionSummary struct {
	SubjectID        string    `json:"subject_id" yaml:"subject_id"`
	AvgActualHours   float64   `json:"avg_actual_hours" yaml:"avg_actual_hours"`
	RecommendedHours float64   `json:"recommended_hours" yaml:"recommended_hours"`
	DataPoints       int       `json:"data_points" yaml:"data_points"`
	Deviations       []float64 `json:"deviations" yaml:"deviations"`
}

// ExecutionRate is average actual hours over recommended hours, 0 when
// nothing was recommended.
func (s ExecutionSummary) ExecutionRate() float64 {
	return stats.SafeDiv(s.AvgActualHours, s.RecommendedHours)
}

// DeviationPercent is the signed deviation of the average from the plan,
// as a percentage of the recommendation.
func (s ExecutionSummary) DeviationPercent() float64 {
	return stats.SafeDiv(s.AvgActualHours-s.RecommendedHours, s.RecommendedHours) * 100
}

// CloneExecutionBasis returns an independent copy of the summaries.
func CloneExecutionBasis(in map[string]ExecutionSummary) map[string]ExecutionSummary {
	return cloneSummaries(in)
}

func cloneSummaries(in map[string]ExecutionSummary) map[string]ExecutionSummary {
	if in == nil {
		return nil
	}
	out := make(map[string]ExecutionSummary, len(in))
	for id, s := range in {
		s.Deviations = append([]float64(nil), s.Deviations...)
		out[id] = s
	}
	return out
}

func cloneLogs(logs []WeeklyExecutionLog) []WeeklyExecutionLog {
	if logs == nil {
		return nil
	}
	out := make([]WeeklyExecutionLog, len(logs))
	for i, l := range logs {
		out[i] = l
		out[i].Entries = append([]ExecutionLogEntry(nil), l.Entries...)
	}
	return out
}
