// Package scenarios runs what-if simulations against the current plan
// without changing it.
package scenarios

import (
	"context"
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/policy"
	"github.com/julianstephens/studypilot/internal/scenario"
)

type DropCmd struct {
	Subject string `arg:"" help:"Subject ID or name to drop."`
}

func (c *DropCmd) Run(ctx *cli.Context) error {
	return simulate(ctx, c.Subject, func(state models.State, id string) (scenario.Result, error) {
		now, err := ctx.CurrentTime()
		if err != nil {
			return scenario.Result{}, err
		}
		return engine.SimulateDrop(context.Background(), state, id, now)
	})
}

type HoursCmd struct {
	Subject string  `arg:"" help:"Subject ID or name."`
	Hours   float64 `arg:"" help:"Available study hours per week to simulate."`
}

func (c *HoursCmd) Validate() error {
	if c.Hours < 0 {
		return engine.ErrInvalidHours
	}
	return nil
}

func (c *HoursCmd) Run(ctx *cli.Context) error {
	return simulate(ctx, c.Subject, func(state models.State, id string) (scenario.Result, error) {
		now, err := ctx.CurrentTime()
		if err != nil {
			return scenario.Result{}, err
		}
		return engine.SimulateHours(context.Background(), state, id, c.Hours, now)
	})
}

type PolicyCmd struct {
	ID string `arg:"" help:"Policy to simulate."`
}

func (c *PolicyCmd) Validate() error {
	if _, ok := policy.Lookup(c.ID); !ok {
		return fmt.Errorf("unknown policy %q (see 'studypilot policy list')", c.ID)
	}
	return nil
}

func (c *PolicyCmd) Run(ctx *cli.Context) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}
	now, err := ctx.CurrentTime()
	if err != nil {
		return err
	}
	result, err := engine.SimulatePolicy(context.Background(), state, c.ID, now)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

// simulate resolves the subject reference against a calculated state and
// prints the outcome of run.
func simulate(ctx *cli.Context, ref string, run func(models.State, string) (scenario.Result, error)) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}
	idx, err := cli.FindSubject(state, ref)
	if err != nil {
		return err
	}
	result, err := run(state, state.Subjects[idx].ID)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func printResult(r scenario.Result) {
	cli.Title("What if")
	fmt.Println(scenario.Summary(r))
	fmt.Println()

	t := cli.NewTable("Rank", "Subject", "Priority", "Hours", "Change")
	deltas := make(map[string]scenario.Delta, len(r.Deltas))
	for _, d := range r.Deltas {
		deltas[d.SubjectID] = d
	}
	plans := models.PlanIndex(r.NewWeeklyPlans)
	for _, res := range r.NewPriorityResults {
		change := "-"
		if d, ok := deltas[res.SubjectID]; ok && (d.HoursDelta != 0 || d.RankDelta != 0) {
			change = fmt.Sprintf("%+.1f h, rank %+d", d.HoursDelta, d.RankDelta)
		}
		t.Row(fmt.Sprint(res.Rank), res.SubjectName, fmt.Sprintf("%.2f", res.PriorityScore), cli.Hours(plans[res.SubjectID].RecommendedHours), change)
	}
	fmt.Println(t.Render())
	fmt.Println(cli.MutedStyle.Render("Simulation only. Nothing was saved."))
}
