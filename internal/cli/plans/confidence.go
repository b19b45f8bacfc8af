package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/confidence"
	"github.com/julianstephens/studypilot/internal/models"
)

type ConfidenceCmd struct{}

func (c *ConfidenceCmd) Run(ctx *cli.Context) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}

	index := models.ConfidenceIndex(state.ConfidenceData)
	cli.Title("Recommendation confidence")
	for _, p := range state.WeeklyPlans {
		conf, ok := index[p.SubjectID]
		if !ok {
			continue
		}
		level := cli.LevelStyle(conf.ConfidenceLevel, true).Render(strings.ToUpper(string(conf.ConfidenceLevel)))
		fmt.Printf("\n%s  %s h  %s (%.0f%%)\n", cli.TitleStyle.Render(p.SubjectName), cli.Hours(p.RecommendedHours), level, conf.ConfidenceScore*100)
		fmt.Printf("  %s\n", conf.Explanation)
		if d := confidence.Disclaimer(conf.ConfidenceLevel); d != "" {
			fmt.Printf("  %s\n", cli.MutedStyle.Render(d))
		}
	}
	return nil
}
