package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/storage"
)

// ResetCmd clears subjects, plans and history. Settings are kept.
type ResetCmd struct {
	Yes bool `short:"y" help:"Reset without asking for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Delete all subjects, plans and history?").
			Description("Settings are kept. SQLite stores are backed up first.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := storage.ResetState(ctx.Store); err != nil {
		return err
	}
	fmt.Println("✓ All study data cleared")
	return nil
}
