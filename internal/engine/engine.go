// Package engine runs the decision pipeline over an explicit application
// state. Every function takes a models.State and returns new values; the
// input state is never modified.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/studypilot/internal/allocation"
	"github.com/julianstephens/studypilot/internal/confidence"
	"github.com/julianstephens/studypilot/internal/constraints"
	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/insights"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/policy"
	"github.com/julianstephens/studypilot/internal/priority"
	"github.com/julianstephens/studypilot/internal/risk"
	"github.com/julianstephens/studypilot/internal/scenario"
	"github.com/julianstephens/studypilot/internal/trends"
	"github.com/julianstephens/studypilot/internal/utils"
)

var (
	// ErrNoSubjects is returned when a calculation is requested with no subjects.
	ErrNoSubjects = errors.New("no subjects, add at least one subject first")
	// ErrNotCalculated is returned when a simulation runs before priorities exist.
	ErrNotCalculated = errors.New("no priorities calculated yet, run 'studypilot calculate' first")
	// ErrInvalidHours is returned for negative or non-numeric hour values.
	ErrInvalidHours = errors.New("hours must be a non-negative number")
)

// Recalculate scores every subject under the state's policy, allocates hours,
// and refreshes the derived risk and confidence data. The ranked results are
// appended to the priority history and the risk assessments to the risk
// history.
func Recalculate(ctx context.Context, state models.State, now time.Time) (models.State, error) {
	if len(state.Subjects) == 0 {
		return state, ErrNoSubjects
	}

	out := state.Clone()
	pol := policy.Get(out.PolicyID)
	out.PolicyID = string(pol.ID)
	if out.CurrentWeek == "" {
		out.CurrentWeek = utils.WeekID(now)
	}

	// Execution history is measured against the plans in force before this
	// run and kept so simulations score against the same basis
	basis := history.Build(out.WeeklyPlans, out.ExecutionLogs)
	results, err := priority.Calculate(ctx, out.Subjects, pol, basis)
	if err != nil {
		return state, fmt.Errorf("failed to calculate priorities: %w", err)
	}
	out.PriorityResults = results
	out.ExecutionBasis = basis
	out.WeeklyPlans = allocation.Allocate(results, out.Subjects)
	out.HistoricalPriorities = append(out.HistoricalPriorities, models.PrioritySnapshot{
		Timestamp: now,
		PolicyID:  out.PolicyID,
		Results:   models.ClonePriorities(results),
	})

	// Risk and confidence look at the freshly allocated plans
	current := history.Build(out.WeeklyPlans, out.ExecutionLogs)
	out.RiskAssessments = risk.Assess(out.Subjects, out.WeeklyPlans, current)
	out.RiskHistory = append(out.RiskHistory, models.RiskSnapshot{
		WeekID:    out.CurrentWeek,
		Timestamp: now,
		Risks:     append([]models.RiskAssessment(nil), out.RiskAssessments...),
	})
	out.ConfidenceData = assessConfidence(out, current)

	logger.Debug("Recalculated state",
		"policy", out.PolicyID,
		"subjects", len(out.Subjects),
		"recommended_hours", models.TotalRecommendedHours(out.WeeklyPlans),
	)
	return out, nil
}

func assessConfidence(state models.State, execHistory map[string]history.Summary) []models.ConfidenceAssessment {
	out := make([]models.ConfidenceAssessment, 0, len(state.WeeklyPlans))
	for _, plan := range state.WeeklyPlans {
		subject, ok := state.FindSubject(plan.SubjectID)
		if !ok {
			continue
		}
		scores := history.PriorityScores(state.HistoricalPriorities, plan.SubjectID)
		out = append(out, confidence.Calculate(subject, history.Lookup(execHistory, plan.SubjectID), scores))
	}
	return out
}

// RecordWeek stores log, replacing any log already recorded for the same
// week. The plan total in force is captured on the log so later analyses can
// compare against what was actually planned.
func RecordWeek(state models.State, log models.WeeklyExecutionLog) models.State {
	out := state.Clone()
	entry := log
	entry.Entries = append([]models.ExecutionLogEntry(nil), log.Entries...)
	if entry.PlannedHours == 0 {
		entry.PlannedHours = models.TotalRecommendedHours(out.WeeklyPlans)
	}

	for i, existing := range out.ExecutionLogs {
		if existing.WeekID == entry.WeekID {
			out.ExecutionLogs[i] = entry
			logger.Debug("Replaced execution log", "week", entry.WeekID)
			return out
		}
	}
	out.ExecutionLogs = append(out.ExecutionLogs, entry)
	logger.Debug("Recorded execution log", "week", entry.WeekID)
	return out
}

// Diagnostics is the constraint and capacity check of the current plan.
type Diagnostics struct {
	Constraints constraints.Evaluation `json:"constraints"`
	Overload    allocation.Overload    `json:"overload"`
}

// Diagnose evaluates the state's current plan. Confidence data is passed to
// the constraint check only when some exists.
func Diagnose(state models.State, cfg constraints.Config) Diagnostics {
	var conf []models.ConfidenceAssessment
	if len(state.ConfidenceData) > 0 {
		conf = state.ConfidenceData
	}
	return Diagnostics{
		Constraints: constraints.Evaluate(state.Subjects, state.WeeklyPlans, cfg, conf),
		Overload:    allocation.CheckOverload(state.WeeklyPlans, state.Subjects),
	}
}

// Analysis bundles the multi-week reports.
type Analysis struct {
	Insights insights.Report `json:"insights"`
	Trends   trends.Report   `json:"trends"`
}

// Analyze derives insights and trends from the recorded history.
func Analyze(state models.State) Analysis {
	report := insights.Unavailable(len(state.ExecutionLogs))
	if len(state.ExecutionLogs) > 0 && len(state.WeeklyPlans) > 0 {
		report = insights.Generate(state.ExecutionLogs, state.WeeklyPlans, state.Subjects)
	}
	return Analysis{
		Insights: report,
		Trends:   trends.Analyze(state),
	}
}

// SimulateDrop shows the plan without subjectID.
func SimulateDrop(ctx context.Context, state models.State, subjectID string, now time.Time) (scenario.Result, error) {
	base, pol, execHistory, err := baseline(state, now)
	if err != nil {
		return scenario.Result{}, err
	}
	return scenario.DropSubject(ctx, base, subjectID, pol, execHistory)
}

// SimulateHours shows the plan with subjectID given newHours of capacity.
func SimulateHours(ctx context.Context, state models.State, subjectID string, newHours float64, now time.Time) (scenario.Result, error) {
	if newHours < 0 || math.IsNaN(newHours) || math.IsInf(newHours, 0) {
		return scenario.Result{}, ErrInvalidHours
	}
	base, pol, execHistory, err := baseline(state, now)
	if err != nil {
		return scenario.Result{}, err
	}
	return scenario.ModifyHours(ctx, base, subjectID, newHours, pol, execHistory)
}

// SimulatePolicy shows the plan under another policy. Unknown ids fall back
// to the balanced policy.
func SimulatePolicy(ctx context.Context, state models.State, policyID string, now time.Time) (scenario.Result, error) {
	base, _, execHistory, err := baseline(state, now)
	if err != nil {
		return scenario.Result{}, err
	}
	return scenario.ChangePolicy(ctx, base, policy.Get(policyID), execHistory)
}

func baseline(state models.State, now time.Time) (scenario.Snapshot, policy.Policy, map[string]history.Summary, error) {
	if len(state.Subjects) == 0 || len(state.PriorityResults) == 0 {
		return scenario.Snapshot{}, policy.Policy{}, nil, ErrNotCalculated
	}
	return scenario.FromState(state, now),
		policy.Get(state.PolicyID),
		models.CloneExecutionBasis(state.ExecutionBasis),
		nil
}
