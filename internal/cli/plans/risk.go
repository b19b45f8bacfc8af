package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/risk"
)

type RiskCmd struct {
	Explain bool `short:"e" help:"Show the explanation for each subject."`
}

func (c *RiskCmd) Run(ctx *cli.Context) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}

	ranked := risk.RankByRisk(state.RiskAssessments)
	cli.Title("Risk assessment")
	t := cli.NewTable("Subject", "Risk", "Level", "Difficulty", "Interest", "Execution", "Deviation")
	for _, r := range ranked {
		t.Row(
			r.SubjectName,
			fmt.Sprintf("%.2f", r.RiskScore),
			cli.LevelStyle(r.RiskLevel, false).Render(strings.ToUpper(string(r.RiskLevel))),
			fmt.Sprintf("%.2f", r.Components.Difficulty),
			fmt.Sprintf("%.2f", r.Components.Interest),
			fmt.Sprintf("%.2f", r.Components.Execution),
			fmt.Sprintf("%.2f", r.Components.Deviation),
		)
	}
	fmt.Println(t.Render())

	if c.Explain {
		for _, r := range ranked {
			fmt.Printf("\n%s\n  %s\n", cli.TitleStyle.Render(r.SubjectName), r.Explanation)
		}
	}
	return nil
}
