// Package tracking holds the commands that record and review what was
// actually studied each week.
package tracking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/utils"
	"github.com/julianstephens/studypilot/internal/validation"
)

type LogRecordCmd struct {
	Entries     []string `arg:"" optional:"" help:"Entries as <subject>=<hours>[:<status>], where status is completed, partial or skipped."`
	Week        string   `short:"w" help:"Week ID (YYYY-W<n>). Defaults to the current week."`
	Interactive bool     `help:"Enter hours for every planned subject with an interactive form."`
}

func (c *LogRecordCmd) Validate() error {
	if len(c.Entries) == 0 && !c.Interactive {
		return fmt.Errorf("provide at least one entry or use --interactive")
	}
	if c.Week != "" && !utils.ValidateWeekID(c.Week) {
		return fmt.Errorf("invalid week ID %q, expected YYYY-W<n>", c.Week)
	}
	return nil
}

func (c *LogRecordCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if len(state.Subjects) == 0 {
		return engine.ErrNoSubjects
	}

	weekID := c.Week
	if weekID == "" {
		weekID, err = currentWeek(ctx, state)
		if err != nil {
			return err
		}
	}

	var entries []models.ExecutionLogEntry
	if c.Interactive {
		entries, err = runLogForm(state, weekID)
	} else {
		entries, err = ParseEntries(c.Entries, state)
	}
	if err != nil {
		return err
	}

	now, err := ctx.CurrentTime()
	if err != nil {
		return err
	}
	log := models.WeeklyExecutionLog{
		WeekID:    weekID,
		Entries:   entries,
		Timestamp: now,
	}
	result := validation.New().ValidateLog(log, state.Subjects)
	if err := result.Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	ctx.PerformAutomaticBackup()

	replaced := hasWeek(state.ExecutionLogs, weekID)
	state = engine.RecordWeek(state, log)
	if err := ctx.SaveState(state); err != nil {
		return err
	}

	verb := "Recorded"
	if replaced {
		verb = "Replaced"
	}
	fmt.Printf("%s %d entr%s for %s (%s hours total)\n", verb, len(entries), plural(len(entries)), weekID, cli.Hours(log.TotalActualHours()))
	return nil
}

// ParseEntries turns <subject>=<hours>[:<status>] arguments into log entries.
// A missing status is inferred from the plan: meeting the recommendation is
// completed, some hours are partial and none is skipped.
func ParseEntries(args []string, state models.State) ([]models.ExecutionLogEntry, error) {
	plans := models.PlanIndex(state.WeeklyPlans)
	entries := make([]models.ExecutionLogEntry, 0, len(args))

	for _, arg := range args {
		ref, rest, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(ref) == "" {
			return nil, fmt.Errorf("%w: entry %q must look like <subject>=<hours>[:<status>]", apperrors.ErrInvalidInput, arg)
		}
		hoursStr, statusStr, hasStatus := strings.Cut(rest, ":")

		idx, err := cli.FindSubject(state, strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		subject := state.Subjects[idx]
		hours, err := strconv.ParseFloat(strings.TrimSpace(hoursStr), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hours in %q", apperrors.ErrInvalidInput, arg)
		}

		status := models.CompletionStatus(strings.ToLower(strings.TrimSpace(statusStr)))
		if !hasStatus {
			status = inferStatus(hours, plans[subject.ID])
		}

		entries = append(entries, models.ExecutionLogEntry{
			SubjectID:        subject.ID,
			ActualHours:      hours,
			CompletionStatus: status,
		})
	}
	return entries, nil
}

func inferStatus(hours float64, plan models.WeeklyPlan) models.CompletionStatus {
	switch {
	case hours <= 0:
		return models.StatusSkipped
	case hours >= plan.RecommendedHours:
		return models.StatusCompleted
	default:
		return models.StatusPartial
	}
}

func hasWeek(logs []models.WeeklyExecutionLog, weekID string) bool {
	for _, l := range logs {
		if l.WeekID == weekID {
			return true
		}
	}
	return false
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// currentWeek is the week the state is tracking, or the calendar week when
// none has been started.
func currentWeek(ctx *cli.Context, state models.State) (string, error) {
	if state.CurrentWeek != "" {
		return state.CurrentWeek, nil
	}
	now, err := ctx.CurrentTime()
	if err != nil {
		return "", err
	}
	return utils.WeekID(now), nil
}

type logField struct {
	subject models.Subject
	hours   string
	status  models.CompletionStatus
}

// runLogForm asks for hours and status of every planned subject.
func runLogForm(state models.State, weekID string) ([]models.ExecutionLogEntry, error) {
	if len(state.WeeklyPlans) == 0 {
		return nil, engine.ErrNotCalculated
	}

	fields := make([]*logField, 0, len(state.WeeklyPlans))
	var groups []*huh.Group
	for _, p := range state.WeeklyPlans {
		subject, ok := state.FindSubject(p.SubjectID)
		if !ok {
			continue
		}
		f := &logField{subject: subject, hours: "0", status: models.StatusCompleted}
		fields = append(fields, f)
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s: actual hours (planned %s)", subject.Name, cli.Hours(p.RecommendedHours))).
				Value(&f.hours).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || h < 0 || h > validation.MaxWeeklyHours {
						return fmt.Errorf("enter hours between 0 and %d", validation.MaxWeeklyHours)
					}
					return nil
				}),
			huh.NewSelect[models.CompletionStatus]().
				Title("Completion status").
				Options(
					huh.NewOption("Completed", models.StatusCompleted),
					huh.NewOption("Partial", models.StatusPartial),
					huh.NewOption("Skipped", models.StatusSkipped),
				).
				Value(&f.status),
		).Title(weekID))
	}

	if err := huh.NewForm(groups...).WithTheme(huh.ThemeDracula()).Run(); err != nil {
		return nil, err
	}

	entries := make([]models.ExecutionLogEntry, len(fields))
	for i, f := range fields {
		// Validated by the form
		hours, _ := strconv.ParseFloat(strings.TrimSpace(f.hours), 64)
		entries[i] = models.ExecutionLogEntry{
			SubjectID:        f.subject.ID,
			ActualHours:      hours,
			CompletionStatus: f.status,
		}
	}
	return entries, nil
}
