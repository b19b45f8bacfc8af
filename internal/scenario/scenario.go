// Package scenario answers what-if questions against a frozen baseline:
// dropping a subject, changing one subject's available hours, or switching
// policy. Every variant recomputes through the same priority and allocation
// code as a live calculation.
package scenario

import (
	"context"
	"fmt"

	"github.com/julianstephens/studypilot/internal/allocation"
	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/policy"
	"github.com/julianstephens/studypilot/internal/priority"
)

type Type string

const (
	TypeDropSubject  Type = "drop_subject"
	TypeModifyHours  Type = "modify_hours"
	TypeChangePolicy Type = "change_policy"
)

// Delta compares a subject's simulated outcome with the baseline. A positive
// RankDelta means the subject moved up.
type Delta struct {
	SubjectID     string  `json:"subject_id"`
	SubjectName   string  `json:"subject_name"`
	PriorityDelta float64 `json:"priority_delta"`
	RankDelta     int     `json:"rank_delta"`
	HoursDelta    float64 `json:"hours_delta"`
}

type DroppedSubject struct {
	SubjectID        string  `json:"subject_id"`
	Name             string  `json:"name"`
	FreedHours       float64 `json:"freed_hours"`
	PreviousPriority float64 `json:"previous_priority"`
}

type ModifiedSubject struct {
	SubjectID  string  `json:"subject_id"`
	Name       string  `json:"name"`
	OldHours   float64 `json:"old_hours"`
	NewHours   float64 `json:"new_hours"`
	HoursDelta float64 `json:"hours_delta"`
}

type Totals struct {
	TotalSubjects         int     `json:"total_subjects"`
	TotalAvailableHours   float64 `json:"total_available_hours"`
	TotalRecommendedHours float64 `json:"total_recommended_hours"`
	AvailableHoursDelta   float64 `json:"available_hours_delta"`
}

// Result is a fresh, independently owned simulation outcome.
type Result struct {
	Type               Type                    `json:"type"`
	OldPolicyID        string                  `json:"old_policy_id"`
	Policy             policy.Policy           `json:"policy"`
	Subjects           []models.Subject        `json:"subjects"`
	NewPriorityResults []models.PriorityResult `json:"new_priority_results"`
	NewWeeklyPlans     []models.WeeklyPlan     `json:"new_weekly_plans"`
	Deltas             []Delta                 `json:"deltas"`
	Dropped            *DroppedSubject         `json:"dropped,omitempty"`
	Modified           *ModifiedSubject        `json:"modified,omitempty"`
	Totals             Totals                  `json:"totals"`
}

// DropSubject simulates removing a subject. Dropping the last subject fails
// with an *Error matching ErrLastSubject.
func DropSubject(ctx context.Context, base Snapshot, subjectID string, pol policy.Policy, execHistory map[string]history.Summary) (Result, error) {
	dropped, ok := findSubject(base.Subjects, subjectID)
	if !ok {
		return Result{}, unknownSubjectError(subjectID)
	}

	remaining := make([]models.Subject, 0, len(base.Subjects))
	for _, s := range base.Subjects {
		if s.ID != subjectID {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) == 0 {
		return Result{}, lastSubjectError(subjectID)
	}

	res, err := recompute(ctx, base, TypeDropSubject, remaining, pol, execHistory)
	if err != nil {
		return Result{}, err
	}

	previous := 0.0
	if r, ok := models.PriorityIndex(base.PriorityResults)[subjectID]; ok {
		previous = r.PriorityScore
	}
	res.Dropped = &DroppedSubject{
		SubjectID:        dropped.ID,
		Name:             dropped.Name,
		FreedHours:       dropped.AvailableStudyHours,
		PreviousPriority: previous,
	}

	logger.Debug("Simulated subject drop", "subject", subjectID, "remaining", len(remaining))
	return res, nil
}

// ModifyHours simulates changing one subject's available weekly hours.
func ModifyHours(ctx context.Context, base Snapshot, subjectID string, newHours float64, pol policy.Policy, execHistory map[string]history.Summary) (Result, error) {
	original, ok := findSubject(base.Subjects, subjectID)
	if !ok {
		return Result{}, unknownSubjectError(subjectID)
	}

	modified := models.CloneSubjects(base.Subjects)
	for i := range modified {
		if modified[i].ID == subjectID {
			modified[i].AvailableStudyHours = newHours
		}
	}

	res, err := recompute(ctx, base, TypeModifyHours, modified, pol, execHistory)
	if err != nil {
		return Result{}, err
	}
	res.Modified = &ModifiedSubject{
		SubjectID:  original.ID,
		Name:       original.Name,
		OldHours:   original.AvailableStudyHours,
		NewHours:   newHours,
		HoursDelta: newHours - original.AvailableStudyHours,
	}

	logger.Debug("Simulated hours change", "subject", subjectID, "old", original.AvailableStudyHours, "new", newHours)
	return res, nil
}

// ChangePolicy simulates recalculating the baseline under another policy.
func ChangePolicy(ctx context.Context, base Snapshot, pol policy.Policy, execHistory map[string]history.Summary) (Result, error) {
	res, err := recompute(ctx, base, TypeChangePolicy, models.CloneSubjects(base.Subjects), pol, execHistory)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("Simulated policy change", "from", base.PolicyID, "to", pol.ID)
	return res, nil
}

func recompute(ctx context.Context, base Snapshot, kind Type, subjects []models.Subject, pol policy.Policy, execHistory map[string]history.Summary) (Result, error) {
	results, err := priority.Calculate(ctx, subjects, pol, execHistory)
	if err != nil {
		return Result{}, fmt.Errorf("failed to simulate %s: %w", kind, err)
	}
	plans := allocation.Allocate(results, subjects)

	totalAvailable := models.TotalAvailableHours(subjects)
	return Result{
		Type:               kind,
		OldPolicyID:        base.PolicyID,
		Policy:             pol,
		Subjects:           subjects,
		NewPriorityResults: results,
		NewWeeklyPlans:     plans,
		Deltas:             deltas(base, results, plans),
		Totals: Totals{
			TotalSubjects:         len(subjects),
			TotalAvailableHours:   totalAvailable,
			TotalRecommendedHours: models.TotalRecommendedHours(plans),
			AvailableHoursDelta:   totalAvailable - models.TotalAvailableHours(base.Subjects),
		},
	}, nil
}

// deltas compares each new result with the baseline. A subject missing from
// the baseline is compared against zero.
func deltas(base Snapshot, results []models.PriorityResult, plans []models.WeeklyPlan) []Delta {
	oldResults := models.PriorityIndex(base.PriorityResults)
	oldPlans := models.PlanIndex(base.WeeklyPlans)
	newPlans := models.PlanIndex(plans)

	out := make([]Delta, 0, len(results))
	for _, r := range results {
		d := Delta{SubjectID: r.SubjectID, SubjectName: r.SubjectName, PriorityDelta: r.PriorityScore}
		if old, ok := oldResults[r.SubjectID]; ok {
			d.PriorityDelta = r.PriorityScore - old.PriorityScore
			d.RankDelta = old.Rank - r.Rank
		}
		newPlan := newPlans[r.SubjectID]
		d.HoursDelta = newPlan.RecommendedHours
		if old, ok := oldPlans[r.SubjectID]; ok {
			d.HoursDelta = newPlan.RecommendedHours - old.RecommendedHours
		}
		out = append(out, d)
	}
	return out
}

func findSubject(subjects []models.Subject, id string) (models.Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return models.Subject{}, false
}
