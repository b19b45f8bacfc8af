package subjects

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
)

type SubjectRemoveCmd struct {
	Subject string `arg:"" help:"Subject ID or name."`
}

func (c *SubjectRemoveCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	idx, err := cli.FindSubject(state, c.Subject)
	if err != nil {
		return err
	}

	removed := state.Subjects[idx]
	state.Subjects = append(state.Subjects[:idx:idx], state.Subjects[idx+1:]...)
	if err := saveRoster(ctx, state); err != nil {
		return err
	}

	fmt.Printf("Removed subject: %s\n", removed.Name)
	return nil
}
