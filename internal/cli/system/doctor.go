package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studypilot/internal/backup"
	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/utils"
	"github.com/julianstephens/studypilot/internal/validation"
)

// errSkipped marks a check that does not apply to the active store.
var errSkipped = errors.New("not applicable")

type check struct {
	name string
	// warn checks report problems without failing the run
	warn bool
	// needsDB checks are skipped when the store cannot be reached
	needsDB bool
	run     func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Data validation", needsDB: true, run: checkValidation},
	{name: "Plan consistency", warn: true, needsDB: true, run: checkPlanConsistency},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(versioned)
	if !ok {
		return fmt.Errorf("%w: store has no schema", errSkipped)
	}

	current, latest, err := store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'studypilot migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return fmt.Errorf("%w: backups cover SQLite stores only", errSkipped)
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'studypilot backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if _, err := ctx.Settings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	state, err := ctx.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	result := validation.New().ValidateState(state)
	return result.Err()
}

// checkPlanConsistency flags plans that no longer match the roster.
func checkPlanConsistency(ctx *cli.Context) error {
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if len(state.WeeklyPlans) == 0 {
		return nil
	}
	index := state.SubjectIndex()
	for _, p := range state.WeeklyPlans {
		if _, ok := index[p.SubjectID]; !ok {
			return fmt.Errorf("plan references removed subject %s - run 'studypilot calculate'", p.SubjectName)
		}
	}
	if len(state.WeeklyPlans) != len(state.Subjects) {
		return fmt.Errorf("plan covers %d of %d subjects - run 'studypilot calculate'", len(state.WeeklyPlans), len(state.Subjects))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Settings()
	if err != nil {
		return nil
	}
	if _, err := utils.CurrentWeekFromSettings(settings); err != nil {
		return fmt.Errorf("cannot resolve the current week: %w", err)
	}
	return nil
}
