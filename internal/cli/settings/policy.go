package settings

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/policy"
)

type PolicyListCmd struct{}

func (c *PolicyListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}

	cli.Title("Decision policies")
	t := cli.NewTable("", "ID", "Name", "Interest", "Credits", "Difficulty", "Execution")
	for _, p := range policy.All() {
		marker := ""
		if string(p.ID) == state.PolicyID {
			marker = "*"
		}
		w := p.Weights
		t.Row(marker, string(p.ID), p.Name,
			fmt.Sprintf("%.1f", w.Interest), fmt.Sprintf("%.1f", w.Credits),
			fmt.Sprintf("%.1f", w.Difficulty), fmt.Sprintf("%.1f", w.Execution))
	}
	fmt.Println(t.Render())
	return nil
}

type PolicyShowCmd struct {
	ID string `arg:"" optional:"" help:"Policy ID. Defaults to the active policy."`
}

func (c *PolicyShowCmd) Run(ctx *cli.Context) error {
	id := c.ID
	if id == "" {
		state, err := ctx.LoadState()
		if err != nil {
			return err
		}
		id = state.PolicyID
	}

	p, ok := policy.Lookup(id)
	if !ok {
		return fmt.Errorf("policy %q: %w", id, apperrors.ErrNotFound)
	}

	cli.Title(p.Name)
	fmt.Printf("  ID:          %s\n", p.ID)
	fmt.Printf("  Description: %s\n", p.Description)
	fmt.Printf("  Weights:     interest %.1f, credits %.1f, difficulty %.1f, execution %.1f\n",
		p.Weights.Interest, p.Weights.Credits, p.Weights.Difficulty, p.Weights.Execution)
	fmt.Printf("  Rationale:   %s\n", p.Rationale)
	return nil
}

type PolicySetCmd struct {
	ID string `arg:"" help:"Policy ID (balanced, exam_focused, risk_averse, execution_aware)."`
}

func (c *PolicySetCmd) Validate() error {
	if _, ok := policy.Lookup(c.ID); !ok {
		return fmt.Errorf("unknown policy %q, run 'studypilot policy list' to see the options", c.ID)
	}
	return nil
}

func (c *PolicySetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	settings.Policy = c.ID
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	state.PolicyID = c.ID

	// An existing plan is rebuilt under the new policy
	if len(state.PriorityResults) > 0 {
		if _, err := ctx.Recalculate(state); err != nil {
			return err
		}
		fmt.Printf("Active policy set to %s. Priorities recalculated.\n", policy.Get(c.ID).Name)
		return nil
	}

	if err := ctx.SaveState(state); err != nil {
		return err
	}
	fmt.Printf("Active policy set to %s.\n", policy.Get(c.ID).Name)
	return nil
}
