// Package risk estimates how likely a subject's plan is to fail.
package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
)

// Component weights.
const (
	DifficultyWeight = 0.30
	InterestWeight   = 0.25
	ExecutionWeight  = 0.25
	DeviationWeight  = 0.20
)

// Level thresholds are inclusive upper bounds.
const (
	LowThreshold    = 0.33
	MediumThreshold = 0.66
)

// factorThreshold is the weighted contribution above which a component is
// named in the explanation.
const factorThreshold = 0.1

// Calculate scores a subject's risk. exec is nil when the subject has no
// logged weeks; deviationPercent is nil when there is no plan to deviate
// from.
func Calculate(subject models.Subject, exec *history.Summary, deviationPercent *float64) models.RiskAssessment {
	difficultyRisk := float64(subject.Difficulty-1) / 4
	interestRisk := float64(6-subject.Interest) / 4

	executionRisk := 0.0
	executionRate := 0.0
	if exec != nil {
		executionRate = exec.ExecutionRate()
		switch {
		case executionRate < 0.7:
			executionRisk = 1 - executionRate
		case executionRate <= 1.0:
			executionRisk = (1 - executionRate) * 0.5
		}
	}

	deviationRisk := 0.0
	if deviationPercent != nil {
		abs := math.Abs(*deviationPercent)
		switch {
		case abs > 30:
			deviationRisk = 1.0
		case abs > 10:
			deviationRisk = abs / 30
		}
	}

	components := models.RiskComponents{
		Difficulty: difficultyRisk * DifficultyWeight,
		Interest:   interestRisk * InterestWeight,
		Execution:  executionRisk * ExecutionWeight,
		Deviation:  deviationRisk * DeviationWeight,
	}
	score := stats.Clamp(components.Sum(), 0, 1)
	level := levelFor(score)

	var factors []string
	if components.Difficulty > factorThreshold {
		factors = append(factors, fmt.Sprintf("high difficulty (%d/5)", subject.Difficulty))
	}
	if components.Interest > factorThreshold {
		factors = append(factors, fmt.Sprintf("low interest level (%d/5)", subject.Interest))
	}
	if components.Execution > factorThreshold && exec != nil {
		factors = append(factors, fmt.Sprintf("poor execution history (%.0f%% of recommended)", executionRate*100))
	}
	if components.Deviation > factorThreshold && deviationPercent != nil {
		factors = append(factors, fmt.Sprintf("high planning deviation (%.0f%%)", math.Abs(*deviationPercent)))
	}

	return models.RiskAssessment{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		RiskScore:   score,
		RiskLevel:   level,
		Components:  components,
		Explanation: explain(score, level, factors),
	}
}

func levelFor(score float64) models.Level {
	switch {
	case score <= LowThreshold:
		return models.LevelLow
	case score <= MediumThreshold:
		return models.LevelMedium
	default:
		return models.LevelHigh
	}
}

func explain(score float64, level models.Level, factors []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk Level: %s (score: %.2f). ", strings.ToUpper(string(level)), score)
	if len(factors) > 0 {
		fmt.Fprintf(&b, "Risk factors: %s. ", strings.Join(factors, ", "))
	} else {
		b.WriteString("No significant risk factors identified. ")
	}

	switch level {
	case models.LevelHigh:
		b.WriteString("This subject requires careful planning and may need additional support or buffer time.")
	case models.LevelMedium:
		b.WriteString("Monitor progress closely and adjust plans if needed.")
	default:
		b.WriteString("This subject appears manageable with standard planning.")
	}
	return b.String()
}

// Assess scores every subject. A subject with execution history also gets
// a deviation measured against its plan.
func Assess(subjects []models.Subject, plans []models.WeeklyPlan, execHistory map[string]history.Summary) []models.RiskAssessment {
	planIdx := models.PlanIndex(plans)
	out := make([]models.RiskAssessment, 0, len(subjects))
	for _, subject := range subjects {
		exec := history.Lookup(execHistory, subject.ID)
		var deviation *float64
		if exec != nil {
			if plan, ok := planIdx[subject.ID]; ok {
				d := stats.SafeDiv(exec.AvgActualHours-plan.RecommendedHours, plan.RecommendedHours) * 100
				deviation = &d
			}
		}
		out = append(out, Calculate(subject, exec, deviation))
	}
	return out
}

// RankByRisk returns a copy of assessments ordered by descending risk score.
// The input slice is left untouched.
func RankByRisk(assessments []models.RiskAssessment) []models.RiskAssessment {
	out := make([]models.RiskAssessment, len(assessments))
	copy(out, assessments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}
