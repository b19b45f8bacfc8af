// Package confidence estimates how far a subject's recommendation can be
// trusted, from how much execution history exists, how steady that history
// is and how stable the subject's priority score has been.
package confidence

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
)

const (
	HighThreshold   = 0.7
	MediumThreshold = 0.4
)

// Factor descriptions reported alongside the score.
const (
	FactorSufficientData    = "sufficient historical data"
	FactorLimitedData       = "limited historical data"
	FactorNoData            = "no historical data"
	FactorStableExecution   = "stable execution patterns"
	FactorModerateExecution = "moderate execution variability"
	FactorHighExecution     = "high execution variability"
	FactorStableInput       = "stable input parameters"
	FactorModerateInput     = "moderate input variability"
	FactorHighInput         = "high input variability"
	FactorInitial           = "initial assessment"
)

// Calculate scores the reliability of a subject's recommendation. exec may be
// nil when the subject has no logged weeks; priorityScores holds the
// subject's score from each past calculation, oldest first.
func Calculate(subject models.Subject, exec *history.Summary, priorityScores []float64) models.ConfidenceAssessment {
	var factors []string
	score := 0.0

	// Data availability.
	switch {
	case exec != nil && exec.DataPoints >= 3:
		score += 0.4
		factors = append(factors, FactorSufficientData)
	case exec != nil && exec.DataPoints >= 1:
		score += 0.2
		factors = append(factors, FactorLimitedData)
	default:
		factors = append(factors, FactorNoData)
	}

	// Execution stability over the absolute deviations.
	if exec != nil && exec.DataPoints >= 2 && len(exec.Deviations) > 0 {
		cv := stats.CoefficientOfVariation(stats.Abs(exec.Deviations))
		switch {
		case cv < 0.2:
			score += 0.3
			factors = append(factors, FactorStableExecution)
		case cv < 0.5:
			score += 0.15
			factors = append(factors, FactorModerateExecution)
		default:
			factors = append(factors, FactorHighExecution)
		}
	}

	// Input consistency.
	if len(priorityScores) >= 2 {
		cv := stats.CoefficientOfVariation(priorityScores)
		switch {
		case cv < 0.1:
			score += 0.3
			factors = append(factors, FactorStableInput)
		case cv < 0.2:
			score += 0.15
			factors = append(factors, FactorModerateInput)
		default:
			factors = append(factors, FactorHighInput)
		}
	} else {
		score += 0.15
		factors = append(factors, FactorInitial)
	}

	score = stats.Clamp(score, 0, 1)
	level := levelFor(score)

	return models.ConfidenceAssessment{
		SubjectID:       subject.ID,
		ConfidenceScore: score,
		ConfidenceLevel: level,
		Factors:         factors,
		Explanation:     explain(score, level, factors),
	}
}

func levelFor(score float64) models.Level {
	switch {
	case score >= HighThreshold:
		return models.LevelHigh
	case score >= MediumThreshold:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

func explain(score float64, level models.Level, factors []string) string {
	var advice string
	switch level {
	case models.LevelLow:
		advice = "Recommendations should be treated as preliminary."
	case models.LevelMedium:
		advice = "Recommendations are reasonably reliable."
	default:
		advice = "Recommendations are highly reliable."
	}
	return fmt.Sprintf("Confidence: %s (score: %.2f). Based on: %s. %s",
		strings.ToUpper(string(level)), score, strings.Join(factors, ", "), advice)
}

// Disclaimer returns the caution shown next to a low or medium confidence
// recommendation, and "" for high confidence.
func Disclaimer(level models.Level) string {
	switch level {
	case models.LevelLow:
		return "⚠️ Low confidence recommendation. Use with caution."
	case models.LevelMedium:
		return "ℹ️ Medium confidence recommendation. Monitor and adjust as needed."
	}
	return ""
}
