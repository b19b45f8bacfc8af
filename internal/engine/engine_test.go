package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/studypilot/internal/constraints"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/scenario"
	"github.com/julianstephens/studypilot/internal/trends"
	"github.com/julianstephens/studypilot/internal/utils"
)

var now = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

func sampleState() models.State {
	return models.State{
		Subjects: []models.Subject{
			{ID: "s1", Name: "Calculus", CreditWeight: 8, Difficulty: 3, Interest: 5, AvailableStudyHours: 10},
			{ID: "s2", Name: "History", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 5},
		},
		PolicyID: "balanced",
	}
}

func TestRecalculateEndToEnd(t *testing.T) {
	in := sampleState()
	got, err := Recalculate(context.Background(), in, now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}

	if len(got.PriorityResults) != 2 {
		t.Fatalf("results = %d, want 2", len(got.PriorityResults))
	}
	first, second := got.PriorityResults[0], got.PriorityResults[1]
	if first.SubjectID != "s1" || first.Rank != 1 || math.Abs(first.PriorityScore-4.1) > 1e-9 {
		t.Errorf("first = %+v", first)
	}
	if second.SubjectID != "s2" || second.Rank != 2 || math.Abs(second.PriorityScore-1.7) > 1e-9 {
		t.Errorf("second = %+v", second)
	}

	plans := models.PlanIndex(got.WeeklyPlans)
	if plans["s1"].RecommendedHours != 10.0 {
		t.Errorf("s1 hours = %v, want 10.0", plans["s1"].RecommendedHours)
	}
	if plans["s2"].RecommendedHours != 4.4 {
		t.Errorf("s2 hours = %v, want 4.4", plans["s2"].RecommendedHours)
	}

	if len(got.HistoricalPriorities) != 1 || got.HistoricalPriorities[0].PolicyID != "balanced" {
		t.Errorf("historical priorities = %+v", got.HistoricalPriorities)
	}
	if len(got.RiskAssessments) != 2 {
		t.Errorf("risk assessments = %d, want 2", len(got.RiskAssessments))
	}
	if len(got.RiskHistory) != 1 || got.RiskHistory[0].WeekID != utils.WeekID(now) {
		t.Errorf("risk history = %+v", got.RiskHistory)
	}
	if got.CurrentWeek != utils.WeekID(now) {
		t.Errorf("current week = %q, want %q", got.CurrentWeek, utils.WeekID(now))
	}
	if len(got.ConfidenceData) != 2 {
		t.Fatalf("confidence = %d, want 2", len(got.ConfidenceData))
	}
	for _, c := range got.ConfidenceData {
		if c.ConfidenceLevel != models.LevelLow {
			t.Errorf("%s confidence = %s, want low without history", c.SubjectID, c.ConfidenceLevel)
		}
	}

	// The caller's state is untouched.
	if in.PriorityResults != nil || in.WeeklyPlans != nil || in.HistoricalPriorities != nil || in.CurrentWeek != "" {
		t.Errorf("input state was modified: %+v", in)
	}
}

func TestRecalculateAppendsHistory(t *testing.T) {
	state := sampleState()
	var err error
	for i := 0; i < 3; i++ {
		state, err = Recalculate(context.Background(), state, now.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("Recalculate() #%d error = %v", i, err)
		}
	}
	if len(state.HistoricalPriorities) != 3 {
		t.Errorf("historical priorities = %d, want 3", len(state.HistoricalPriorities))
	}
	if len(state.RiskHistory) != 3 {
		t.Errorf("risk history = %d, want 3", len(state.RiskHistory))
	}

	// Snapshots are copies, not views of the live results.
	state.PriorityResults[0].PriorityScore = 99
	if state.HistoricalPriorities[2].Results[0].PriorityScore == 99 {
		t.Error("priority snapshot shares memory with live results")
	}
}

func TestRecalculateUnknownPolicyFallsBack(t *testing.T) {
	state := sampleState()
	state.PolicyID = "does-not-exist"
	got, err := Recalculate(context.Background(), state, now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if got.PolicyID != "balanced" {
		t.Errorf("policy = %q, want balanced", got.PolicyID)
	}
}

func TestRecalculateErrors(t *testing.T) {
	if _, err := Recalculate(context.Background(), models.State{}, now); !errors.Is(err, ErrNoSubjects) {
		t.Errorf("empty state error = %v, want ErrNoSubjects", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := sampleState()
	got, err := Recalculate(ctx, in, now)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
	if got.PriorityResults != nil {
		t.Error("failed recalculation returned partial results")
	}
}

func TestRecordWeek(t *testing.T) {
	state, err := Recalculate(context.Background(), sampleState(), now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}

	first := models.WeeklyExecutionLog{
		WeekID:  "2026-W11",
		Entries: []models.ExecutionLogEntry{{SubjectID: "s1", ActualHours: 8, CompletionStatus: models.StatusPartial}},
	}
	recorded := RecordWeek(state, first)
	if len(recorded.ExecutionLogs) != 1 {
		t.Fatalf("logs = %d, want 1", len(recorded.ExecutionLogs))
	}
	if got := recorded.ExecutionLogs[0].PlannedHours; math.Abs(got-14.4) > 1e-9 {
		t.Errorf("planned hours = %v, want 14.4", got)
	}
	if len(state.ExecutionLogs) != 0 {
		t.Error("RecordWeek modified its input")
	}

	replacement := models.WeeklyExecutionLog{
		WeekID:  "2026-W11",
		Entries: []models.ExecutionLogEntry{{SubjectID: "s1", ActualHours: 10, CompletionStatus: models.StatusCompleted}},
	}
	replaced := RecordWeek(recorded, replacement)
	if len(replaced.ExecutionLogs) != 1 || replaced.ExecutionLogs[0].Entries[0].ActualHours != 10 {
		t.Errorf("replace by week id failed: %+v", replaced.ExecutionLogs)
	}

	next := RecordWeek(replaced, models.WeeklyExecutionLog{WeekID: "2026-W12"})
	if len(next.ExecutionLogs) != 2 || next.ExecutionLogs[1].WeekID != "2026-W12" {
		t.Errorf("append failed: %+v", next.ExecutionLogs)
	}
}

func TestDiagnose(t *testing.T) {
	state, err := Recalculate(context.Background(), sampleState(), now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	d := Diagnose(state, constraints.Config{})
	if d.Constraints.HasHardViolations {
		t.Errorf("unexpected hard violations: %+v", d.Constraints.Hard)
	}
	if d.Overload.Overloaded {
		t.Errorf("unexpected overload: %+v", d.Overload)
	}
	if math.Abs(d.Overload.TotalAvailable-15) > 1e-9 {
		t.Errorf("total available = %v, want 15", d.Overload.TotalAvailable)
	}
}

func TestAnalyzeWithoutHistory(t *testing.T) {
	a := Analyze(sampleState())
	if len(a.Insights.All()) != 0 {
		t.Errorf("insights = %+v, want none", a.Insights)
	}
	if a.Trends.Accuracy.Trend != trends.InsufficientData {
		t.Errorf("accuracy trend = %q", a.Trends.Accuracy.Trend)
	}
}

func TestAnalyzeWithHistory(t *testing.T) {
	state, err := Recalculate(context.Background(), sampleState(), now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	state = RecordWeek(state, models.WeeklyExecutionLog{
		WeekID: "2026-W11",
		Entries: []models.ExecutionLogEntry{
			{SubjectID: "s1", ActualHours: 4, CompletionStatus: models.StatusPartial},
			{SubjectID: "s2", ActualHours: 4.4, CompletionStatus: models.StatusCompleted},
		},
	})

	a := Analyze(state)
	if len(a.Insights.Raw) != 1 || a.Insights.Raw[0].SubjectName != "Calculus" {
		t.Errorf("raw insights = %+v, want one for Calculus", a.Insights.Raw)
	}
	if len(a.Insights.Pattern) != 0 {
		t.Errorf("pattern insights need two weeks, got %+v", a.Insights.Pattern)
	}
}

func TestSimulations(t *testing.T) {
	ctx := context.Background()

	if _, err := SimulateDrop(ctx, sampleState(), "s1", now); !errors.Is(err, ErrNotCalculated) {
		t.Errorf("simulate before calculate error = %v", err)
	}

	state, err := Recalculate(ctx, sampleState(), now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}

	drop, err := SimulateDrop(ctx, state, "s2", now)
	if err != nil {
		t.Fatalf("SimulateDrop() error = %v", err)
	}
	if drop.Type != scenario.TypeDropSubject || len(drop.NewWeeklyPlans) != 1 {
		t.Errorf("drop result = %+v", drop)
	}

	if _, err := SimulateHours(ctx, state, "s1", -1, now); !errors.Is(err, ErrInvalidHours) {
		t.Errorf("negative hours error = %v", err)
	}
	if _, err := SimulateHours(ctx, state, "s1", math.NaN(), now); !errors.Is(err, ErrInvalidHours) {
		t.Errorf("NaN hours error = %v", err)
	}
	hours, err := SimulateHours(ctx, state, "s1", 20, now)
	if err != nil {
		t.Fatalf("SimulateHours() error = %v", err)
	}
	if hours.Modified == nil || hours.Modified.HoursDelta != 10 {
		t.Errorf("modified = %+v", hours.Modified)
	}

	same, err := SimulatePolicy(ctx, state, "balanced", now)
	if err != nil {
		t.Fatalf("SimulatePolicy() error = %v", err)
	}
	for _, d := range same.Deltas {
		if d.PriorityDelta != 0 || d.RankDelta != 0 || d.HoursDelta != 0 {
			t.Errorf("same policy delta = %+v", d)
		}
	}

	single := state.Clone()
	single.Subjects = single.Subjects[:1]
	if _, err := SimulateDrop(ctx, single, "s1", now); !errors.Is(err, scenario.ErrLastSubject) {
		t.Errorf("drop last subject error = %v", err)
	}

	// Simulations leave the live state alone.
	if len(state.WeeklyPlans) != 2 || state.Subjects[0].AvailableStudyHours != 10 {
		t.Errorf("state modified by simulation: %+v", state)
	}
}

func TestSimulationsScoreAgainstCalculationHistory(t *testing.T) {
	ctx := context.Background()
	state := sampleState()
	state.PolicyID = "execution_aware"

	state, err := Recalculate(ctx, state, now)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	state = RecordWeek(state, models.WeeklyExecutionLog{
		WeekID: "2026-W11",
		Entries: []models.ExecutionLogEntry{
			{SubjectID: "s1", ActualHours: 5, CompletionStatus: models.StatusPartial},
			{SubjectID: "s2", ActualHours: 2, CompletionStatus: models.StatusPartial},
		},
	})
	state, err = Recalculate(ctx, state, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if len(state.ExecutionBasis) != 2 {
		t.Fatalf("execution basis = %+v, want both subjects", state.ExecutionBasis)
	}

	// A week logged after the calculation must not shift the baseline either.
	later := RecordWeek(state, models.WeeklyExecutionLog{
		WeekID:  "2026-W12",
		Entries: []models.ExecutionLogEntry{{SubjectID: "s2", ActualHours: 0, CompletionStatus: models.StatusSkipped}},
	})

	for name, s := range map[string]models.State{"recalculated": state, "logged since": later} {
		t.Run(name, func(t *testing.T) {
			same, err := SimulatePolicy(ctx, s, "execution_aware", now)
			if err != nil {
				t.Fatalf("SimulatePolicy() error = %v", err)
			}
			if len(same.Deltas) != 2 {
				t.Fatalf("deltas = %+v", same.Deltas)
			}
			for _, d := range same.Deltas {
				if d.PriorityDelta != 0 || d.RankDelta != 0 || d.HoursDelta != 0 {
					t.Errorf("same policy delta = %+v", d)
				}
			}
		})
	}

	hours, err := SimulateHours(ctx, state, "s2", 5, now)
	if err != nil {
		t.Fatalf("SimulateHours() error = %v", err)
	}
	for _, d := range hours.Deltas {
		if d.PriorityDelta != 0 || d.HoursDelta != 0 {
			t.Errorf("unchanged capacity delta = %+v", d)
		}
	}
}
