// Package subjects holds the commands that manage the subject roster.
package subjects

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/validation"
)

// invalidatePlan drops derived results after the roster changes; they no
// longer describe the subjects on file.
func invalidatePlan(state *models.State) bool {
	had := len(state.PriorityResults) > 0
	state.PriorityResults = nil
	state.WeeklyPlans = nil
	state.RiskAssessments = nil
	state.ConfidenceData = nil
	state.ExecutionBasis = nil
	return had
}

func validateRoster(subjects []models.Subject) error {
	result := validation.New().ValidateSubjects(subjects)
	if err := result.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

func saveRoster(ctx *cli.Context, state models.State) error {
	if err := validateRoster(state.Subjects); err != nil {
		return err
	}
	if invalidatePlan(&state) {
		fmt.Println(cli.MutedStyle.Render("Existing plan cleared. Run 'studypilot calculate' to rebuild it."))
	}
	return ctx.SaveState(state)
}
