package tracking

import (
	"fmt"
	"slices"

	"github.com/julianstephens/studypilot/internal/cli"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
	"github.com/julianstephens/studypilot/internal/utils"
)

type LogListCmd struct {
	Week string `short:"w" help:"Show the entries of one week."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if len(state.ExecutionLogs) == 0 {
		fmt.Println("No weeks recorded yet.")
		return nil
	}

	if c.Week != "" {
		return printWeek(state, c.Week)
	}

	logs := slices.Clone(state.ExecutionLogs)
	slices.SortStableFunc(logs, func(a, b models.WeeklyExecutionLog) int {
		return utils.CompareWeekIDs(a.WeekID, b.WeekID)
	})

	cli.Title("Recorded weeks")
	t := cli.NewTable("Week", "Entries", "Planned", "Actual", "Execution")
	for _, l := range logs {
		planned := l.PlannedHours
		actual := l.TotalActualHours()
		rate := "-"
		if planned > 0 {
			rate = fmt.Sprintf("%.0f%%", stats.SafeDiv(actual, planned)*100)
		}
		t.Row(l.WeekID, fmt.Sprint(len(l.Entries)), cli.Hours(planned), cli.Hours(actual), rate)
	}
	fmt.Println(t.Render())
	return nil
}

func printWeek(state models.State, weekID string) error {
	for _, l := range state.ExecutionLogs {
		if l.WeekID != weekID {
			continue
		}
		plans := models.PlanIndex(state.WeeklyPlans)
		cli.Title(fmt.Sprintf("Week %s (recorded %s)", l.WeekID, l.Timestamp.Format("2006-01-02 15:04")))
		t := cli.NewTable("Subject", "Actual", "Recommended", "Status")
		for _, e := range l.Entries {
			name := e.SubjectID
			if s, ok := state.FindSubject(e.SubjectID); ok {
				name = s.Name
			}
			recommended := "-"
			if p, ok := plans[e.SubjectID]; ok {
				recommended = cli.Hours(p.RecommendedHours)
			}
			t.Row(name, cli.Hours(e.ActualHours), recommended, string(e.CompletionStatus))
		}
		fmt.Println(t.Render())
		return nil
	}
	return fmt.Errorf("week %s: %w", weekID, apperrors.ErrNotFound)
}
