package subjects

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studypilot/internal/cli"
)

type SubjectEditCmd struct {
	Subject     string   `arg:"" help:"Subject ID or name."`
	Name        *string  `help:"New name."`
	Credits     *int     `short:"c" help:"Credit weight (1-10)."`
	Difficulty  *int     `short:"d" help:"Difficulty (1-5)."`
	Interest    *int     `short:"i" help:"Interest (1-5)."`
	Hours       *float64 `short:"H" help:"Available study hours per week."`
	Interactive bool     `help:"Edit the subject with an interactive form."`
}

func (c *SubjectEditCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	idx, err := cli.FindSubject(state, c.Subject)
	if err != nil {
		return err
	}

	subject := state.Subjects[idx]
	updated := false
	if c.Name != nil {
		subject.Name = strings.TrimSpace(*c.Name)
		updated = true
	}
	if c.Credits != nil {
		subject.CreditWeight = *c.Credits
		updated = true
	}
	if c.Difficulty != nil {
		subject.Difficulty = *c.Difficulty
		updated = true
	}
	if c.Interest != nil {
		subject.Interest = *c.Interest
		updated = true
	}
	if c.Hours != nil {
		subject.AvailableStudyHours = *c.Hours
		updated = true
	}
	if c.Interactive {
		if err := runSubjectForm(&subject); err != nil {
			return err
		}
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use flags or --interactive to edit the subject.")
		return nil
	}

	state.Subjects[idx] = subject
	if err := saveRoster(ctx, state); err != nil {
		return err
	}
	fmt.Printf("Updated subject: %s\n", subject.Name)
	return nil
}
