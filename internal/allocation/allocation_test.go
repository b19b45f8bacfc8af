package allocation

import (
	"math"
	"testing"

	"github.com/julianstephens/studypilot/internal/models"
)

func subjects() []models.Subject {
	return []models.Subject{
		{ID: "s1", Name: "Calculus", CreditWeight: 8, Difficulty: 3, Interest: 5, AvailableStudyHours: 10},
		{ID: "s2", Name: "History", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 5},
	}
}

func TestAllocateProportionalWithCap(t *testing.T) {
	results := []models.PriorityResult{
		{SubjectID: "s1", SubjectName: "Calculus", PriorityScore: 4.1, Rank: 1},
		{SubjectID: "s2", SubjectName: "History", PriorityScore: 1.7, Rank: 2},
	}

	plans := Allocate(results, subjects())
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}

	// 4.1/5.8*15 = 10.60 capped to 10; 1.7/5.8*15 = 4.397 rounded to 4.4.
	if plans[0].RecommendedHours != 10.0 {
		t.Errorf("s1 recommended = %v, want 10.0", plans[0].RecommendedHours)
	}
	if plans[1].RecommendedHours != 4.4 {
		t.Errorf("s2 recommended = %v, want 4.4", plans[1].RecommendedHours)
	}
	if plans[0].AvailableHours != 10 || plans[1].AvailableHours != 5 {
		t.Errorf("available hours not snapshotted: %+v", plans)
	}
	if plans[1].PriorityScore != 1.7 {
		t.Errorf("priority score not snapshotted: %v", plans[1].PriorityScore)
	}

	// The capped excess is not redistributed.
	total := models.TotalRecommendedHours(plans)
	if total >= 15 {
		t.Errorf("total recommended = %v, expected less than available 15", total)
	}
}

func TestAllocateInvariants(t *testing.T) {
	subs := []models.Subject{
		{ID: "a", AvailableStudyHours: 1.3},
		{ID: "b", AvailableStudyHours: 7.77},
		{ID: "c", AvailableStudyHours: 0},
		{ID: "d", AvailableStudyHours: 12.05},
	}
	results := []models.PriorityResult{
		{SubjectID: "a", PriorityScore: 4.9},
		{SubjectID: "b", PriorityScore: 3.13},
		{SubjectID: "c", PriorityScore: 2.2},
		{SubjectID: "d", PriorityScore: 0.85},
	}

	for _, plan := range Allocate(results, subs) {
		if plan.RecommendedHours > plan.AvailableHours {
			t.Errorf("%s recommended %v exceeds available %v", plan.SubjectID, plan.RecommendedHours, plan.AvailableHours)
		}
		tenths := plan.RecommendedHours * 10
		if math.Abs(tenths-math.Round(tenths)) > 1e-6 {
			t.Errorf("%s recommended %v is not a multiple of 0.1", plan.SubjectID, plan.RecommendedHours)
		}
	}
}

func TestAllocateRoundingNeverExceedsCap(t *testing.T) {
	subs := []models.Subject{{ID: "a", AvailableStudyHours: 7.77}}
	plans := Allocate([]models.PriorityResult{{SubjectID: "a", PriorityScore: 2}}, subs)
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	if plans[0].RecommendedHours != 7.7 {
		t.Errorf("recommended = %v, want 7.7", plans[0].RecommendedHours)
	}
}

func TestAllocateZeroTotalScore(t *testing.T) {
	results := []models.PriorityResult{
		{SubjectID: "s1", PriorityScore: 0},
		{SubjectID: "s2", PriorityScore: 0},
	}
	for _, plan := range Allocate(results, subjects()) {
		if plan.RecommendedHours != 0 {
			t.Errorf("%s recommended = %v, want 0", plan.SubjectID, plan.RecommendedHours)
		}
		if math.IsNaN(plan.RecommendedHours) {
			t.Errorf("%s recommended is NaN", plan.SubjectID)
		}
	}
}

func TestAllocateSkipsUnknownSubjects(t *testing.T) {
	results := []models.PriorityResult{
		{SubjectID: "ghost", PriorityScore: 3},
		{SubjectID: "s1", PriorityScore: 3},
	}
	plans := Allocate(results, subjects())
	if len(plans) != 1 || plans[0].SubjectID != "s1" {
		t.Errorf("expected only s1, got %+v", plans)
	}
}

func TestCheckOverload(t *testing.T) {
	subs := subjects()
	tests := []struct {
		name  string
		plans []models.WeeklyPlan
		want  bool
	}{
		{"under", []models.WeeklyPlan{{RecommendedHours: 10}, {RecommendedHours: 4.4}}, false},
		{"at threshold", []models.WeeklyPlan{{RecommendedHours: 16.5}}, false},
		{"over", []models.WeeklyPlan{{RecommendedHours: 12}, {RecommendedHours: 5}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckOverload(tt.plans, subs)
			if got.Overloaded != tt.want {
				t.Errorf("Overloaded = %v, want %v (%+v)", got.Overloaded, tt.want, got)
			}
			if got.TotalAvailable != 15 {
				t.Errorf("TotalAvailable = %v, want 15", got.TotalAvailable)
			}
		})
	}
}
