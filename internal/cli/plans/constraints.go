package plans

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/constraints"
	"github.com/julianstephens/studypilot/internal/engine"
)

type ConstraintsCmd struct {
	MinHours float64 `help:"Minimum weekly hours per subject. Defaults to the min_hours setting."`
	All      bool    `short:"a" help:"Show satisfied checks as well as violations."`
}

func (c *ConstraintsCmd) Validate() error {
	if c.MinHours < 0 {
		return fmt.Errorf("--min-hours must not be negative")
	}
	return nil
}

func (c *ConstraintsCmd) Run(ctx *cli.Context) error {
	state, err := ctx.RequirePlan()
	if err != nil {
		return err
	}

	cfg := constraints.Config{MinHours: c.MinHours}
	if cfg.MinHours == 0 {
		settings, err := ctx.Settings()
		if err != nil {
			return err
		}
		cfg.MinHours = settings.MinHours
	}

	diag := engine.Diagnose(state, cfg)
	cli.Title("Constraint check")
	if c.All {
		printResults("Hard constraints", diag.Constraints.Hard)
		printResults("Soft constraints", diag.Constraints.Soft)
		fmt.Println()
	}
	fmt.Println(constraints.Summary(diag.Constraints))
	if diag.Overload.Overloaded {
		fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ Plan exceeds available hours by %s", cli.Hours(diag.Overload.Excess))))
	}
	return nil
}

func printResults(heading string, results []constraints.Result) {
	fmt.Printf("\n%s:\n", heading)
	for _, r := range results {
		mark := cli.SuccessStyle.Render("✓")
		if r.Violation {
			mark = cli.WarningStyle.Render("✗")
			if r.Severity == constraints.SeverityError {
				mark = cli.DangerStyle.Render("✗")
			}
		}
		fmt.Printf("  %s %s: %s\n", mark, r.Name, r.Message)
	}
}
