package settings

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	MinHours *float64 `help:"Minimum weekly hours per subject used by the constraint check."`
	Timezone *string  `help:"IANA timezone used for week ids (e.g. 'Europe/Berlin' or 'Local')."`
}

func (c *SettingsCmd) Validate() error {
	if c.MinHours != nil && *c.MinHours <= 0 {
		return fmt.Errorf("--min-hours must be greater than zero")
	}
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", *c.Timezone)
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Policy:    %s\n", settings.Policy)
		fmt.Printf("  Min Hours: %s\n", cli.Hours(settings.MinHours))
		fmt.Printf("  Timezone:  %s\n", settings.Timezone)
		fmt.Printf("  Storage:   %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	updated := false
	if c.MinHours != nil {
		settings.MinHours = *c.MinHours
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
