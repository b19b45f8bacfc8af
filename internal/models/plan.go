package models

import "time"

// ScoreComponents are the weighted contributions of each priority factor.
type ScoreComponents struct {
	Interest   float64 `json:"interest" yaml:"interest"`
	Credits    float64 `json:"credits" yaml:"credits"`
	Difficulty float64 `json:"difficulty" yaml:"difficulty"`
	Execution  float64 `json:"execution" yaml:"execution"`
}

// Sum returns the priority score the components add up to.
func (c ScoreComponents) Sum() float64 {
	return c.Interest + c.Credits + c.Difficulty + c.Execution
}

type PriorityResult struct {
	SubjectID     string          `json:"subject_id" yaml:"subject_id"`
	SubjectName   string          `json:"subject_name" yaml:"subject_name"`
	PriorityScore float64         `json:"priority_score" yaml:"priority_score"`
	Components    ScoreComponents `json:"components" yaml:"components"`
	Rank          int             `json:"rank" yaml:"rank"`
	Explanation   string          `json:"explanation" yaml:"explanation"`
	PolicyID      string          `json:"policy_id" yaml:"policy_id"`
}

type WeeklyPlan struct {
	SubjectID        string  `json:"subject_id" yaml:"subject_id"`
	SubjectName      string  `json:"subject_name" yaml:"subject_name"`
	RecommendedHours float64 `json:"recommended_hours" yaml:"recommended_hours"`
	AvailableHours   float64 `json:"available_hours" yaml:"available_hours"`
	PriorityScore    float64 `json:"priority_score" yaml:"priority_score"`
}

// TotalRecommendedHours sums recommended hours across plans.
func TotalRecommendedHours(plans []WeeklyPlan) float64 {
	total := 0.0
	for _, p := range plans {
		total += p.RecommendedHours
	}
	return total
}

// PrioritySnapshot is the ranked result set of one calculation.
type PrioritySnapshot struct {
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
	PolicyID  string           `json:"policy_id" yaml:"policy_id"`
	Results   []PriorityResult `json:"results" yaml:"results"`
}

func clonePriorities(results []PriorityResult) []PriorityResult {
	if results == nil {
		return nil
	}
	out := make([]PriorityResult, len(results))
	copy(out, results)
	return out
}

func clonePlans(plans []WeeklyPlan) []WeeklyPlan {
	if plans == nil {
		return nil
	}
	out := make([]WeeklyPlan, len(plans))
	copy(out, plans)
	return out
}

// ClonePriorities returns an independent copy of the ranked results.
func ClonePriorities(results []PriorityResult) []PriorityResult { return clonePriorities(results) }

// ClonePlans returns an independent copy of the plans.
func ClonePlans(plans []WeeklyPlan) []WeeklyPlan { return clonePlans(plans) }
