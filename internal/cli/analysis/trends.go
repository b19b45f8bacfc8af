package analysis

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/trends"
)

type TrendsCmd struct {
	Verbose bool `short:"v" help:"Show per-week and per-subject detail."`
}

func (c *TrendsCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	report := engine.Analyze(state).Trends

	cli.Title("Planning accuracy")
	fmt.Printf("%s %s\n", labelBadge(report.Accuracy.Trend), report.Accuracy.Message)
	if c.Verbose {
		for i, week := range report.Accuracy.WeekIDs {
			fmt.Printf("  %-10s %.0f%%\n", week, report.Accuracy.WeekAverages[i]*100)
		}
	}
	fmt.Println()

	cli.Title("Priority volatility")
	fmt.Printf("%s %s\n", labelBadge(report.Volatility.Volatility), report.Volatility.Message)
	if c.Verbose {
		for _, v := range report.Volatility.Subjects {
			fmt.Printf("  %-20s CV %.2f (%s)\n", subjectName(state, v.SubjectID), v.CoefficientOfVariation, v.Volatility)
		}
	}
	fmt.Println()

	cli.Title("Burnout")
	fmt.Printf("%s %s\n", labelBadge(report.Burnout.BurnoutRisk), report.Burnout.Message)
	if c.Verbose && len(report.Burnout.Weeks) > 0 {
		t := cli.NewTable("Week", "Planned", "Actual", "Execution")
		for _, w := range report.Burnout.Weeks {
			t.Row(w.WeekID, cli.Hours(w.Planned), cli.Hours(w.Actual), fmt.Sprintf("%.0f%%", w.ExecutionRate*100))
		}
		fmt.Println(t.Render())
	}
	fmt.Println()

	cli.Title("Risk")
	fmt.Printf("%s %s\n", labelBadge(report.Risk.Trend), report.Risk.Message)
	if len(report.Risk.Subjects) > 0 {
		t := cli.NewTable("Subject", "Trend", "Slope")
		for _, r := range report.Risk.Subjects {
			t.Row(subjectName(state, r.SubjectID), string(r.Trend), fmt.Sprintf("%.3f", r.Slope))
		}
		fmt.Println(t.Render())
	}
	return nil
}

func labelBadge(l trends.Label) string {
	text := fmt.Sprintf("[%s]", l)
	switch l {
	case trends.Improving, trends.Low:
		return cli.SuccessStyle.Render(text)
	case trends.Deteriorating, trends.High:
		return cli.DangerStyle.Render(text)
	case trends.InsufficientData:
		return cli.MutedStyle.Render(text)
	default:
		return cli.WarningStyle.Render(text)
	}
}

func subjectName(state models.State, id string) string {
	if s, ok := state.FindSubject(id); ok {
		return s.Name
	}
	return id
}
