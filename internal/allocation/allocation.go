// Package allocation turns ranked priority scores into recommended weekly
// study hours.
package allocation

import (
	"math"

	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/priority"
	"github.com/julianstephens/studypilot/internal/stats"
)

// OverloadFactor is how far total recommended hours may exceed total
// available hours before an overload is reported.
const OverloadFactor = 1.1

// Allocate splits the subjects' combined available hours in proportion to
// priority score. Each share is capped at the subject's own availability and
// rounded to a tenth of an hour; a rounded share that would land above the
// cap is floored to the tenth below it instead. Hours trimmed by the cap are not handed to
// other subjects, so the plan total can fall short of the available total.
//
// Plans follow the order of results. Results whose subject is missing from
// subjects are skipped.
func Allocate(results []models.PriorityResult, subjects []models.Subject) []models.WeeklyPlan {
	totalScore := priority.TotalScore(results)
	totalHours := models.TotalAvailableHours(subjects)

	byID := make(map[string]models.Subject, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = s
	}

	plans := make([]models.WeeklyPlan, 0, len(results))
	for _, r := range results {
		subject, ok := byID[r.SubjectID]
		if !ok {
			continue
		}
		raw := stats.SafeDiv(r.PriorityScore, totalScore) * totalHours
		hours := stats.RoundTenth(math.Min(raw, subject.AvailableStudyHours))
		if hours > subject.AvailableStudyHours {
			hours = math.Floor(subject.AvailableStudyHours*10) / 10
		}
		plans = append(plans, models.WeeklyPlan{
			SubjectID:        r.SubjectID,
			SubjectName:      r.SubjectName,
			RecommendedHours: hours,
			AvailableHours:   subject.AvailableStudyHours,
			PriorityScore:    r.PriorityScore,
		})
	}
	return plans
}

// Overload describes recommended hours exceeding what is available.
type Overload struct {
	Overloaded       bool    `json:"overloaded"`
	TotalRecommended float64 `json:"total_recommended"`
	TotalAvailable   float64 `json:"total_available"`
	Excess           float64 `json:"excess"`
}

// CheckOverload compares the plan total against the available total.
func CheckOverload(plans []models.WeeklyPlan, subjects []models.Subject) Overload {
	recommended := models.TotalRecommendedHours(plans)
	available := models.TotalAvailableHours(subjects)
	return Overload{
		Overloaded:       recommended > available*OverloadFactor,
		TotalRecommended: recommended,
		TotalAvailable:   available,
		Excess:           recommended - available,
	}
}
