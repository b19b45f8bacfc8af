package system

import (
	"fmt"

	"github.com/julianstephens/studypilot/internal/cli"
)

// versioned is implemented by stores that track a schema version.
type versioned interface {
	SchemaVersion() (current, latest int, err error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(versioned)
	if !ok {
		fmt.Println("This store has no schema to migrate.")
		return nil
	}

	before, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if before >= latest {
		fmt.Println("No migrations to apply. Database is up to date.")
		return nil
	}

	// Init applies pending migrations and is safe on an existing store
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	after, _, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	fmt.Printf("Successfully applied %d migration(s). Schema version: %d\n", after-before, after)
	return nil
}
