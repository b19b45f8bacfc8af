package tracking

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/utils"
)

type WeekCurrentCmd struct{}

func (c *WeekCurrentCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	now, err := ctx.CurrentTime()
	if err != nil {
		return err
	}

	calendar := utils.WeekID(now)
	tracking := state.CurrentWeek
	if tracking == "" {
		tracking = calendar
	}
	fmt.Printf("Tracking week: %s\n", tracking)
	if tracking != calendar {
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Calendar week is %s. Run 'studypilot week new' to start it.", calendar)))
	}
	return nil
}

// WeekNewCmd moves tracking to the calendar week.
type WeekNewCmd struct{}

func (c *WeekNewCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	now, err := ctx.CurrentTime()
	if err != nil {
		return err
	}

	state.CurrentWeek = utils.WeekID(now)
	if err := ctx.SaveState(state); err != nil {
		return err
	}
	fmt.Printf("Now tracking week %s\n", state.CurrentWeek)
	return nil
}
