package plans

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/allocation"
	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/models"
)

type PlanCmd struct{}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}
	return printPlan(state)
}

func printPlan(state models.State) error {
	cli.Title(fmt.Sprintf("Weekly plan (%s)", state.CurrentWeek))

	t := cli.NewTable("Subject", "Recommended", "Available", "Priority")
	for _, p := range state.WeeklyPlans {
		t.Row(p.SubjectName, cli.Hours(p.RecommendedHours)+" h", cli.Hours(p.AvailableHours)+" h", fmt.Sprintf("%.2f", p.PriorityScore))
	}
	fmt.Println(t.Render())

	overload := allocation.CheckOverload(state.WeeklyPlans, state.Subjects)
	fmt.Printf("Total recommended: %s of %s available hours\n",
		cli.Hours(overload.TotalRecommended), cli.Hours(overload.TotalAvailable))
	if overload.Overloaded {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ Plan exceeds available hours by %s", cli.Hours(overload.Excess))))
	}
	return nil
}
