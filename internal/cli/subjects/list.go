package subjects

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/models"
)

type SubjectListCmd struct {
	ShowIDs bool `help:"Show subject IDs." name:"show-ids"`
}

func (c *SubjectListCmd) Run(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if len(state.Subjects) == 0 {
		fmt.Println("No subjects added yet.")
		return nil
	}

	headers := []string{"Name", "Credits", "Difficulty", "Interest", "Hours/week"}
	if c.ShowIDs {
		headers = append([]string{"ID"}, headers...)
	}
	t := cli.NewTable(headers...)
	for _, s := range state.Subjects {
		row := []string{
			s.Name,
			strconv.Itoa(s.CreditWeight),
			fmt.Sprintf("%d/5", s.Difficulty),
			fmt.Sprintf("%d/5", s.Interest),
			cli.Hours(s.AvailableStudyHours),
		}
		if c.ShowIDs {
			row = append([]string{s.ID}, row...)
		}
		t.Row(row...)
	}

	cli.Title("Subjects")
	fmt.Println(t.Render())
	fmt.Printf("Total available: %s hours/week\n", cli.Hours(models.TotalAvailableHours(state.Subjects)))
	return nil
}
