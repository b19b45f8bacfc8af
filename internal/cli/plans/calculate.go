// Package plans holds the commands that compute and display the weekly plan
// and its assessments.
package plans

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/policy"
)

type CalculateCmd struct {
	Explain bool `short:"e" help:"Show the explanation for each subject."`
}

func (c *CalculateCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	state, err = ctx.Recalculate(state)
	if err != nil {
		return err
	}

	pol := policy.Get(state.PolicyID)
	cli.Title(fmt.Sprintf("Priorities (%s)", pol.Name))
	t := cli.NewTable("Rank", "Subject", "Score", "Interest", "Credits", "Difficulty", "Execution")
	for _, r := range state.PriorityResults {
		t.Row(
			strconv.Itoa(r.Rank),
			r.SubjectName,
			fmt.Sprintf("%.2f", r.PriorityScore),
			fmt.Sprintf("%.2f", r.Components.Interest),
			fmt.Sprintf("%.2f", r.Components.Credits),
			fmt.Sprintf("%.2f", r.Components.Difficulty),
			fmt.Sprintf("%.2f", r.Components.Execution),
		)
	}
	fmt.Println(t.Render())

	if c.Explain {
		for _, r := range state.PriorityResults {
			fmt.Printf("\n%s\n  %s\n", cli.TitleStyle.Render(r.SubjectName), r.Explanation)
		}
	}

	fmt.Println()
	return printPlan(state)
}
