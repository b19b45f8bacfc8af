// Package insights derives observations about study habits from execution
// logs. Insights come in three tiers, each unlocked by more recorded weeks;
// a lower tier keeps reporting once a higher one unlocks.
package insights

import (
	"fmt"
	"math"

	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
)

// Tier is the maturity of an insight.
type Tier string

const (
	TierRaw        Tier = "raw"
	TierPattern    Tier = "pattern"
	TierBehavioral Tier = "behavioral"
)

// Weeks of logs each tier needs.
const (
	RawMinWeeks        = 1
	PatternMinWeeks    = 2
	BehavioralMinWeeks = 3
)

// Type identifies the observation an insight makes.
type Type string

const (
	TypeDeviation               Type = "deviation"
	TypeRepeatedUnderestimation Type = "repeated_underestimation"
	TypeRepeatedOvercommitment  Type = "repeated_overcommitment"
	TypePriorityMisalignment    Type = "priority_misalignment"
	TypeHighConsistency         Type = "high_consistency"
	TypeLowConsistency          Type = "low_consistency"
	TypeOverconfidenceBias      Type = "overconfidence_bias"
	TypeAvoidancePattern        Type = "avoidance_pattern"
	TypePlanningFallacy         Type = "planning_fallacy"
)

// OverallSubject is the subject name used by insights about the whole plan.
const OverallSubject = "Overall Planning"

// Insight is one observation with the numbers behind it.
type Insight struct {
	Type           Type               `json:"type"`
	SubjectID      string             `json:"subject_id,omitempty"`
	SubjectName    string             `json:"subject_name"`
	Tier           Tier               `json:"tier"`
	Message        string             `json:"message"`
	Recommendation string             `json:"recommendation"`
	Data           map[string]float64 `json:"data"`
}

// Status says whether a tier had enough history to run.
type Status string

const (
	StatusAvailable        Status = "available"
	StatusInsufficientData Status = "insufficient_data"
)

// Report groups insights by tier. A tier whose status is
// StatusInsufficientData was not evaluated, as opposed to one that ran and
// found nothing.
type Report struct {
	Raw        []Insight       `json:"raw"`
	Pattern    []Insight       `json:"pattern"`
	Behavioral []Insight       `json:"behavioral"`
	Weeks      int             `json:"weeks"`
	Status     map[Tier]Status `json:"status"`
}

// Tiers lists the tiers from least to most history required.
var Tiers = []Tier{TierRaw, TierPattern, TierBehavioral}

// MinWeeks is the number of logged weeks tier t needs.
func MinWeeks(t Tier) int {
	switch t {
	case TierPattern:
		return PatternMinWeeks
	case TierBehavioral:
		return BehavioralMinWeeks
	default:
		return RawMinWeeks
	}
}

// Available reports whether tier t was evaluated.
func (r Report) Available(t Tier) bool {
	return r.Status[t] == StatusAvailable
}

// Unavailable is the report for history that cannot be analyzed at all,
// such as logs with no plan to compare against.
func Unavailable(weeks int) Report {
	r := Report{Weeks: weeks, Status: make(map[Tier]Status, len(Tiers))}
	for _, t := range Tiers {
		r.Status[t] = StatusInsufficientData
	}
	return r
}

// ForTier returns the insights of one tier.
func (r Report) ForTier(t Tier) []Insight {
	switch t {
	case TierPattern:
		return r.Pattern
	case TierBehavioral:
		return r.Behavioral
	default:
		return r.Raw
	}
}

// All returns every insight, raw first.
func (r Report) All() []Insight {
	out := make([]Insight, 0, len(r.Raw)+len(r.Pattern)+len(r.Behavioral))
	out = append(out, r.Raw...)
	out = append(out, r.Pattern...)
	return append(out, r.Behavioral...)
}

// Generate runs every tier that has enough weeks of logs.
func Generate(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan, subjects []models.Subject) Report {
	r := Unavailable(len(logs))
	if len(logs) >= RawMinWeeks {
		r.Raw = rawInsights(logs, plans, subjects)
		r.Status[TierRaw] = StatusAvailable
	}
	if len(logs) >= PatternMinWeeks {
		r.Pattern = patternInsights(logs, plans)
		r.Status[TierPattern] = StatusAvailable
	}
	if len(logs) >= BehavioralMinWeeks {
		r.Behavioral = behavioralInsights(logs, plans, subjects)
		r.Status[TierBehavioral] = StatusAvailable
	}
	return r
}

func rawInsights(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan, subjects []models.Subject) []Insight {
	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[s.ID] = true
	}

	var out []Insight
	for _, plan := range plans {
		if !known[plan.SubjectID] {
			continue
		}
		entries := models.EntriesFor(logs, plan.SubjectID)
		if len(entries) == 0 {
			continue
		}

		avg := stats.Mean(actualHours(entries))
		deviation := avg - plan.RecommendedHours
		percent := stats.SafeDiv(deviation, plan.RecommendedHours) * 100
		if math.Abs(percent) <= 20 {
			continue
		}

		direction, advice := "fall short of", "Review if recommendations are realistic."
		if deviation > 0 {
			direction, advice = "exceed", "Consider if recommendations are too conservative."
		}
		out = append(out, Insight{
			Type:        TypeDeviation,
			SubjectID:   plan.SubjectID,
			SubjectName: plan.SubjectName,
			Tier:        TierRaw,
			Message: fmt.Sprintf("%s: Actual hours (%.1f) %s recommended hours (%.1f) by %.0f%%.",
				plan.SubjectName, avg, direction, plan.RecommendedHours, math.Abs(percent)),
			Recommendation: advice,
			Data: map[string]float64{
				"recommended":       plan.RecommendedHours,
				"actual":            avg,
				"deviation":         deviation,
				"deviation_percent": percent,
			},
		})
	}
	return out
}

func patternInsights(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan) []Insight {
	var out []Insight
	for _, plan := range plans {
		entries := models.EntriesFor(logs, plan.SubjectID)
		if len(entries) < 2 {
			continue
		}
		n := float64(len(entries))
		rec := plan.RecommendedHours

		under := countWhere(entries, func(e models.ExecutionLogEntry) bool { return e.ActualHours < rec*0.8 }) / n
		if under >= 0.6 {
			out = append(out, Insight{
				Type:           TypeRepeatedUnderestimation,
				SubjectID:      plan.SubjectID,
				SubjectName:    plan.SubjectName,
				Tier:           TierPattern,
				Message:        fmt.Sprintf("%s: You consistently study less than recommended in %.0f%% of weeks.", plan.SubjectName, under*100),
				Recommendation: "Consider adjusting expectations or re-evaluating available time.",
				Data:           map[string]float64{"underestimation_rate": under, "weeks_analyzed": n},
			})
		}

		over := countWhere(entries, func(e models.ExecutionLogEntry) bool { return e.ActualHours > rec*1.2 }) / n
		if over >= 0.6 {
			out = append(out, Insight{
				Type:           TypeRepeatedOvercommitment,
				SubjectID:      plan.SubjectID,
				SubjectName:    plan.SubjectName,
				Tier:           TierPattern,
				Message:        fmt.Sprintf("%s: You consistently study more than recommended in %.0f%% of weeks.", plan.SubjectName, over*100),
				Recommendation: "Consider if this allocation aligns with overall academic goals.",
				Data:           map[string]float64{"overcommitment_rate": over, "weeks_analyzed": n},
			})
		}

		skipped := countWhere(entries, func(e models.ExecutionLogEntry) bool { return e.CompletionStatus == models.StatusSkipped }) / n
		low := countWhere(entries, func(e models.ExecutionLogEntry) bool { return e.ActualHours < rec*0.5 }) / n
		if plan.PriorityScore >= 3.5 && (skipped > 0.3 || low > 0.4) {
			out = append(out, Insight{
				Type:           TypePriorityMisalignment,
				SubjectID:      plan.SubjectID,
				SubjectName:    plan.SubjectName,
				Tier:           TierPattern,
				Message:        fmt.Sprintf("%s: High priority but frequently skipped or under-executed.", plan.SubjectName),
				Recommendation: "Consider re-evaluating priority factors or identifying barriers to execution.",
				Data:           map[string]float64{"priority_score": plan.PriorityScore, "skipped_rate": skipped, "low_execution_rate": low},
			})
		}

		if len(entries) >= 3 {
			hours := actualHours(entries)
			cv := stats.CoefficientOfVariation(hours)
			data := map[string]float64{"coefficient_of_variation": cv, "mean_hours": stats.Mean(hours)}
			switch {
			case cv < 0.15:
				out = append(out, Insight{
					Type:           TypeHighConsistency,
					SubjectID:      plan.SubjectID,
					SubjectName:    plan.SubjectName,
					Tier:           TierPattern,
					Message:        fmt.Sprintf("%s: Very consistent execution pattern.", plan.SubjectName),
					Recommendation: "This reliability can be used to improve planning for other subjects.",
					Data:           data,
				})
			case cv > 0.5:
				out = append(out, Insight{
					Type:           TypeLowConsistency,
					SubjectID:      plan.SubjectID,
					SubjectName:    plan.SubjectName,
					Tier:           TierPattern,
					Message:        fmt.Sprintf("%s: Highly variable execution pattern.", plan.SubjectName),
					Recommendation: "Consider identifying factors causing variability.",
					Data:           data,
				})
			}
		}
	}
	return out
}

func behavioralInsights(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan, subjects []models.Subject) []Insight {
	var out []Insight

	current := models.TotalRecommendedHours(plans)
	ratios := make([]float64, len(logs))
	for i, log := range logs {
		planned := log.PlannedHours
		if planned == 0 {
			planned = current
		}
		ratios[i] = stats.SafeDiv(log.TotalActualHours(), planned)
	}
	avgRatio := stats.Mean(ratios)
	if avgRatio < 0.7 && len(ratios) >= BehavioralMinWeeks {
		out = append(out, Insight{
			Type:           TypeOverconfidenceBias,
			SubjectName:    OverallSubject,
			Tier:           TierBehavioral,
			Message:        fmt.Sprintf("Overconfidence bias detected: You consistently plan %.0f%% more than you execute.", (1-avgRatio)*100),
			Recommendation: "Consider adding 20-30% buffer to all plans or using historical execution rates to calibrate.",
			Data:           map[string]float64{"average_execution_ratio": avgRatio, "weeks_analyzed": float64(len(ratios))},
		})
	}

	planIdx := models.PlanIndex(plans)
	for _, subject := range subjects {
		if subject.Difficulty < 4 {
			continue
		}
		plan, ok := planIdx[subject.ID]
		if !ok {
			continue
		}
		entries := models.EntriesFor(logs, subject.ID)
		if len(entries) < 3 {
			continue
		}
		rates := make([]float64, len(entries))
		for i, e := range entries {
			rates[i] = stats.SafeDiv(e.ActualHours, plan.RecommendedHours)
		}
		rate := stats.Mean(rates)
		if rate < 0.5 {
			out = append(out, Insight{
				Type:           TypeAvoidancePattern,
				SubjectID:      subject.ID,
				SubjectName:    subject.Name,
				Tier:           TierBehavioral,
				Message:        fmt.Sprintf("%s: High difficulty subject executed at %.0f%% rate.", subject.Name, rate*100),
				Recommendation: "Consider breaking down into smaller tasks or scheduling at peak energy times.",
				Data:           map[string]float64{"difficulty": float64(subject.Difficulty), "execution_rate": rate},
			})
		}
	}

	for _, plan := range plans {
		entries := models.EntriesFor(logs, plan.SubjectID)
		if len(entries) < 3 {
			continue
		}
		exceeded := countWhere(entries, func(e models.ExecutionLogEntry) bool {
			return e.ActualHours > plan.RecommendedHours*1.3
		}) / float64(len(entries))
		if exceeded > 0.4 && plan.RecommendedHours < 5 {
			out = append(out, Insight{
				Type:           TypePlanningFallacy,
				SubjectID:      plan.SubjectID,
				SubjectName:    plan.SubjectName,
				Tier:           TierBehavioral,
				Message:        fmt.Sprintf("%s: Planning fallacy detected. Actual execution exceeded plans in %.0f%% of weeks.", plan.SubjectName, exceeded*100),
				Recommendation: "Consider using historical data to calibrate estimates or adding time buffers.",
				Data:           map[string]float64{"exceeded_rate": exceeded, "initial_plan": plan.RecommendedHours},
			})
		}
	}
	return out
}

func actualHours(entries []models.ExecutionLogEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.ActualHours
	}
	return out
}

func countWhere(entries []models.ExecutionLogEntry, pred func(models.ExecutionLogEntry) bool) float64 {
	n := 0
	for _, e := range entries {
		if pred(e) {
			n++
		}
	}
	return float64(n)
}
