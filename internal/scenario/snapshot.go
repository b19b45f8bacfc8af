package scenario

import (
	"time"

	"github.com/julianstephens/studypilot/internal/models"
)

// Snapshot is the frozen baseline a simulation runs against. It owns its
// slices; nothing a simulation does is visible through the state it was
// taken from, and simulations never write to it.
type Snapshot struct {
	Timestamp       time.Time               `json:"timestamp"`
	Subjects        []models.Subject        `json:"subjects"`
	PriorityResults []models.PriorityResult `json:"priority_results"`
	WeeklyPlans     []models.WeeklyPlan     `json:"weekly_plans"`
	PolicyID        string                  `json:"policy_id"`
}

// NewSnapshot copies the live collections into an independent baseline.
func NewSnapshot(subjects []models.Subject, results []models.PriorityResult, plans []models.WeeklyPlan, policyID string, now time.Time) Snapshot {
	return Snapshot{
		Timestamp:       now,
		Subjects:        models.CloneSubjects(subjects),
		PriorityResults: models.ClonePriorities(results),
		WeeklyPlans:     models.ClonePlans(plans),
		PolicyID:        policyID,
	}
}

// FromState snapshots the parts of s a simulation needs.
func FromState(s models.State, now time.Time) Snapshot {
	return NewSnapshot(s.Subjects, s.PriorityResults, s.WeeklyPlans, s.PolicyID, now)
}

// Clone returns a copy sharing no slices with the receiver.
func (s Snapshot) Clone() Snapshot {
	return NewSnapshot(s.Subjects, s.PriorityResults, s.WeeklyPlans, s.PolicyID, s.Timestamp)
}
