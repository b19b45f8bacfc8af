// Package analysis prints what the execution history says about planning.
package analysis

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	"github.com/julianstephens/studypilot/internal/insights"
)

var tierTitles = map[insights.Tier]string{
	insights.TierRaw:        "Raw observations",
	insights.TierPattern:    "Patterns",
	insights.TierBehavioral: "Behavioral insights",
}

type InsightsCmd struct {
	Tier string `short:"t" help:"Only show one tier (raw, pattern or behavioral)."`
}

func (c *InsightsCmd) Validate() error {
	if c.Tier == "" {
		return nil
	}
	if _, ok := tierTitles[insights.Tier(c.Tier)]; !ok {
		return fmt.Errorf("unknown tier %q, expected raw, pattern or behavioral", c.Tier)
	}
	return nil
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if len(state.ExecutionLogs) == 0 {
		fmt.Println("No weeks recorded yet. Use 'studypilot log record' after a week of study.")
		return nil
	}

	report := engine.Analyze(state).Insights

	tiers := insights.Tiers
	if c.Tier != "" {
		tiers = []insights.Tier{insights.Tier(c.Tier)}
	}

	for _, tier := range tiers {
		printTier(tier, report, len(state.WeeklyPlans) > 0)
	}
	return nil
}

func printTier(tier insights.Tier, report insights.Report, hasPlan bool) {
	cli.Title(tierTitles[tier])
	items := report.ForTier(tier)
	switch {
	case !hasPlan:
		fmt.Println(cli.MutedStyle.Render("No plan to compare against. Run 'studypilot calculate' first."))
	case !report.Available(tier):
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Need at least %d weeks of data (have %d).", insights.MinWeeks(tier), report.Weeks)))
	case len(items) == 0:
		fmt.Println(cli.MutedStyle.Render("Nothing notable."))
	default:
		for _, in := range items {
			fmt.Printf("• %s: %s\n", in.SubjectName, in.Message)
			if in.Recommendation != "" {
				fmt.Printf("  → %s\n", in.Recommendation)
			}
		}
	}
	fmt.Println()
}
