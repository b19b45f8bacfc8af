// Package trends fits least-squares slopes over the recorded history to
// describe how planning accuracy, priority stability, workload and risk move
// from week to week.
package trends

import (
	"fmt"
	"math"

	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
	"github.com/julianstephens/studypilot/internal/utils"
)

type Label string

const (
	InsufficientData Label = "insufficient_data"

	Improving     Label = "improving"
	Deteriorating Label = "deteriorating"
	Stable        Label = "stable"
	Increasing    Label = "increasing"
	Decreasing    Label = "decreasing"

	High   Label = "high"
	Medium Label = "medium"
	Low    Label = "low"
)

// SlopeThreshold separates a real trend from noise.
const SlopeThreshold = 0.05

const (
	minAccuracyWeeks = 2
	minSnapshots     = 2
	minBurnoutWeeks  = 3
	minRiskSamples   = 2
)

type AccuracyPoint struct {
	WeekID    string  `json:"week_id"`
	SubjectID string  `json:"subject_id"`
	Accuracy  float64 `json:"accuracy"`
}

type AccuracyTrend struct {
	Trend        Label           `json:"trend"`
	Message      string          `json:"message"`
	Slope        float64         `json:"slope"`
	Points       []AccuracyPoint `json:"points"`
	WeekIDs      []string        `json:"week_ids"`
	WeekAverages []float64       `json:"week_averages"`
}

// PlanningAccuracy scores every logged entry against the current plan and
// regresses the weekly averages.
func PlanningAccuracy(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan) AccuracyTrend {
	if len(logs) < minAccuracyWeeks {
		return AccuracyTrend{Trend: InsufficientData, Message: "Insufficient data for trend analysis (need at least 2 weeks)."}
	}

	planIdx := models.PlanIndex(plans)
	var points []AccuracyPoint
	for _, log := range logs {
		for _, e := range log.Entries {
			plan, ok := planIdx[e.SubjectID]
			if !ok {
				continue
			}
			deviation := math.Abs(e.ActualHours - plan.RecommendedHours)
			points = append(points, AccuracyPoint{
				WeekID:    log.WeekID,
				SubjectID: e.SubjectID,
				Accuracy:  math.Max(0, 1-deviation/math.Max(plan.RecommendedHours, 1)),
			})
		}
	}
	if len(points) < 2 {
		return AccuracyTrend{Trend: InsufficientData, Message: "Insufficient data points for trend analysis.", Points: points}
	}

	weekIDs := make([]string, len(points))
	for i, p := range points {
		weekIDs[i] = p.WeekID
	}
	weeks := utils.SortedUniqueWeekIDs(weekIDs)
	averages := make([]float64, len(weeks))
	for i, week := range weeks {
		var scores []float64
		for _, p := range points {
			if p.WeekID == week {
				scores = append(scores, p.Accuracy)
			}
		}
		averages[i] = stats.Mean(scores)
	}

	slope := stats.Slope(averages)
	out := AccuracyTrend{Slope: slope, Points: points, WeekIDs: weeks, WeekAverages: averages}
	switch {
	case slope > SlopeThreshold:
		out.Trend = Improving
		out.Message = fmt.Sprintf("Planning accuracy is improving over time (slope: %.3f).", slope)
	case slope < -SlopeThreshold:
		out.Trend = Deteriorating
		out.Message = fmt.Sprintf("Planning accuracy is deteriorating over time (slope: %.3f).", slope)
	default:
		out.Trend = Stable
		out.Message = fmt.Sprintf("Planning accuracy is relatively stable (slope: %.3f).", slope)
	}
	return out
}

type SubjectVolatility struct {
	SubjectID              string  `json:"subject_id"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Volatility             Label   `json:"volatility"`
}

type VolatilityTrend struct {
	Volatility             Label               `json:"volatility"`
	Message                string              `json:"message"`
	CoefficientOfVariation float64             `json:"coefficient_of_variation"`
	Subjects               []SubjectVolatility `json:"subjects"`
}

// PriorityVolatility averages each subject's coefficient of variation of
// priority score across calculations.
func PriorityVolatility(snapshots []models.PrioritySnapshot) VolatilityTrend {
	if len(snapshots) < minSnapshots {
		return VolatilityTrend{Volatility: InsufficientData, Message: "Insufficient data for volatility analysis."}
	}

	order, series := groupScores(len(snapshots), func(yield func(id string, score float64)) {
		for _, snap := range snapshots {
			for _, r := range snap.Results {
				yield(r.SubjectID, r.PriorityScore)
			}
		}
	})

	subjects := make([]SubjectVolatility, len(order))
	cvs := make([]float64, len(order))
	for i, id := range order {
		cv := stats.CoefficientOfVariation(series[id])
		cvs[i] = cv
		subjects[i] = SubjectVolatility{SubjectID: id, CoefficientOfVariation: cv, Volatility: volatilityLabel(cv)}
	}

	avg := stats.Mean(cvs)
	out := VolatilityTrend{Volatility: volatilityLabel(avg), CoefficientOfVariation: avg, Subjects: subjects}
	switch out.Volatility {
	case High:
		out.Message = fmt.Sprintf("High priority volatility detected (avg CV: %.2f).", avg)
	case Medium:
		out.Message = fmt.Sprintf("Moderate priority volatility (avg CV: %.2f).", avg)
	default:
		out.Message = fmt.Sprintf("Low priority volatility (avg CV: %.2f).", avg)
	}
	return out
}

func volatilityLabel(cv float64) Label {
	switch {
	case cv > 0.2:
		return High
	case cv > 0.1:
		return Medium
	default:
		return Low
	}
}

type WeekMetric struct {
	WeekID        string  `json:"week_id"`
	Planned       float64 `json:"planned"`
	Actual        float64 `json:"actual"`
	ExecutionRate float64 `json:"execution_rate"`
}

type BurnoutTrend struct {
	BurnoutRisk    Label        `json:"burnout_risk"`
	Message        string       `json:"message"`
	WorkloadSlope  float64      `json:"workload_slope"`
	ExecutionSlope float64      `json:"execution_slope"`
	Weeks          []WeekMetric `json:"weeks"`
}

// Burnout regresses planned hours and execution rate week by week. A week's
// planned total is the one recorded with its log, or the current plan total
// when the log predates recording it.
func Burnout(logs []models.WeeklyExecutionLog, plans []models.WeeklyPlan) BurnoutTrend {
	if len(logs) < minBurnoutWeeks {
		return BurnoutTrend{BurnoutRisk: InsufficientData, Message: "Insufficient data for burnout analysis (need at least 3 weeks)."}
	}

	byWeek := make(map[string]models.WeeklyExecutionLog, len(logs))
	ids := make([]string, 0, len(logs))
	for _, log := range logs {
		if _, seen := byWeek[log.WeekID]; !seen {
			byWeek[log.WeekID] = log
		}
		ids = append(ids, log.WeekID)
	}
	currentPlanned := models.TotalRecommendedHours(plans)

	weeks := utils.SortedUniqueWeekIDs(ids)
	metrics := make([]WeekMetric, len(weeks))
	planned := make([]float64, len(weeks))
	rates := make([]float64, len(weeks))
	for i, id := range weeks {
		log := byWeek[id]
		p := log.PlannedHours
		if p <= 0 {
			p = currentPlanned
		}
		actual := log.TotalActualHours()
		metrics[i] = WeekMetric{WeekID: id, Planned: p, Actual: actual, ExecutionRate: stats.SafeDiv(actual, p)}
		planned[i] = p
		rates[i] = metrics[i].ExecutionRate
	}

	workload := stats.Slope(planned)
	execution := stats.Slope(rates)
	out := BurnoutTrend{BurnoutRisk: Low, WorkloadSlope: workload, ExecutionSlope: execution, Weeks: metrics}
	switch {
	case workload > 0 && execution < -SlopeThreshold:
		out.BurnoutRisk = High
		out.Message = "⚠️ Burnout risk detected: Workload increasing while execution decreasing."
	case workload > 0 && execution > 0:
		out.Message = "Workload and execution both increasing. Monitor capacity."
	case workload < 0 && execution > 0:
		out.Message = "Good capacity management."
	default:
		out.Message = "Workload and execution trends are stable or mixed."
	}
	return out
}

type SubjectRiskTrend struct {
	SubjectID string    `json:"subject_id"`
	Trend     Label     `json:"trend"`
	Slope     float64   `json:"slope"`
	Scores    []float64 `json:"scores"`
	Message   string    `json:"message"`
}

// RiskTrend's Trend is Increasing when any subject's risk rises, Decreasing
// when none rises and some fall, and Stable otherwise.
type RiskTrend struct {
	Trend    Label              `json:"trend"`
	Subjects []SubjectRiskTrend `json:"subjects"`
	Message  string             `json:"message"`
}

// Risk regresses each subject's risk score across recorded risk snapshots.
func Risk(snapshots []models.RiskSnapshot) RiskTrend {
	if len(snapshots) < minSnapshots {
		return RiskTrend{Trend: InsufficientData, Message: "Insufficient data for risk trend analysis."}
	}

	order, series := groupScores(len(snapshots), func(yield func(id string, score float64)) {
		for _, snap := range snapshots {
			for _, r := range snap.Risks {
				yield(r.SubjectID, r.RiskScore)
			}
		}
	})

	subjects := make([]SubjectRiskTrend, len(order))
	for i, id := range order {
		scores := series[id]
		if len(scores) < minRiskSamples {
			subjects[i] = SubjectRiskTrend{SubjectID: id, Trend: InsufficientData, Scores: scores, Message: "Insufficient data points."}
			continue
		}
		slope := stats.Slope(scores)
		trend := Stable
		switch {
		case slope > SlopeThreshold:
			trend = Increasing
		case slope < -SlopeThreshold:
			trend = Decreasing
		}
		subjects[i] = SubjectRiskTrend{
			SubjectID: id,
			Trend:     trend,
			Slope:     slope,
			Scores:    scores,
			Message:   fmt.Sprintf("Risk is %s (slope: %.3f).", trend, slope),
		}
	}
	return RiskTrend{
		Trend:    overallRisk(subjects),
		Subjects: subjects,
		Message:  fmt.Sprintf("Analyzed risk trends for %d subject(s).", len(subjects)),
	}
}

func overallRisk(subjects []SubjectRiskTrend) Label {
	seen := make(map[Label]bool, len(subjects))
	for _, s := range subjects {
		seen[s.Trend] = true
	}
	switch {
	case seen[Increasing]:
		return Increasing
	case seen[Decreasing]:
		return Decreasing
	case seen[Stable]:
		return Stable
	}
	return InsufficientData
}

// groupScores collects per-subject series, remembering first-seen order.
func groupScores(sizeHint int, each func(yield func(id string, score float64))) ([]string, map[string][]float64) {
	var order []string
	series := make(map[string][]float64, sizeHint)
	each(func(id string, score float64) {
		if _, ok := series[id]; !ok {
			order = append(order, id)
		}
		series[id] = append(series[id], score)
	})
	return order, series
}

// Report bundles every trend analysis.
type Report struct {
	Accuracy   AccuracyTrend   `json:"accuracy"`
	Volatility VolatilityTrend `json:"volatility"`
	Burnout    BurnoutTrend    `json:"burnout"`
	Risk       RiskTrend       `json:"risk"`
}

// Analyze runs all four analyses over the state's history.
func Analyze(state models.State) Report {
	return Report{
		Accuracy:   PlanningAccuracy(state.ExecutionLogs, state.WeeklyPlans),
		Volatility: PriorityVolatility(state.HistoricalPriorities),
		Burnout:    Burnout(state.ExecutionLogs, state.WeeklyPlans),
		Risk:       Risk(state.RiskHistory),
	}
}
