package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/cli/analysis"
	"github.com/julianstephens/studypilot/internal/cli/backups"
	"github.com/julianstephens/studypilot/internal/cli/plans"
	"github.com/julianstephens/studypilot/internal/cli/scenarios"
	"github.com/julianstephens/studypilot/internal/cli/settings"
	"github.com/julianstephens/studypilot/internal/cli/subjects"
	"github.com/julianstephens/studypilot/internal/cli/system"
	"github.com/julianstephens/studypilot/internal/cli/tracking"
	"github.com/julianstephens/studypilot/internal/constants"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/keyring"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/storage"
	"github.com/julianstephens/studypilot/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file (.db or .json) or PostgreSQL connection string. PostgreSQL passwords must come from the keyring, ${env} or .pgpass, not the URL." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Enable debug logging."`

	Init        system.InitCmd       `cmd:"" help:"Initialize studypilot storage."`
	Migrate     system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor      system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui         system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Calculate   plans.CalculateCmd   `cmd:"" help:"Recalculate priorities, the weekly plan, risk and confidence."`
	Plan        plans.PlanCmd        `cmd:"" help:"Show the current weekly plan."`
	Risk        plans.RiskCmd        `cmd:"" help:"Show risk assessments."`
	Confidence  plans.ConfidenceCmd  `cmd:"" help:"Show recommendation confidence."`
	Constraints plans.ConstraintsCmd `cmd:"" help:"Check the plan against capacity and subject limits."`
	Insights    analysis.InsightsCmd `cmd:"" help:"Show insights from execution history."`
	Trends      analysis.TrendsCmd   `cmd:"" help:"Show trends across weeks."`
	Settings    settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Export      system.ExportCmd     `cmd:"" help:"Export settings and state."`
	Reset       system.ResetCmd      `cmd:"" help:"Delete all subjects, plans and history."`

	Subject struct {
		Add    subjects.SubjectAddCmd    `cmd:"" help:"Add a subject."`
		List   subjects.SubjectListCmd   `cmd:"" help:"List subjects."`
		Edit   subjects.SubjectEditCmd   `cmd:"" help:"Edit a subject."`
		Remove subjects.SubjectRemoveCmd `cmd:"" help:"Remove a subject."`
		Import subjects.SubjectImportCmd `cmd:"" help:"Import subjects from a YAML or JSON file."`
	} `cmd:"" help:"Manage subjects."`
	Log struct {
		Record tracking.LogRecordCmd `cmd:"" help:"Record a week of study."`
		List   tracking.LogListCmd   `cmd:"" help:"List execution logs."`
	} `cmd:"" help:"Manage execution logs."`
	Week struct {
		Current tracking.WeekCurrentCmd `cmd:"" help:"Show the current week." default:"1"`
		New     tracking.WeekNewCmd     `cmd:"" help:"Start a new week."`
	} `cmd:"" help:"Manage the current week."`
	Scenario struct {
		Drop   scenarios.DropCmd   `cmd:"" help:"Simulate dropping a subject."`
		Hours  scenarios.HoursCmd  `cmd:"" help:"Simulate changing a subject's hours."`
		Policy scenarios.PolicyCmd `cmd:"" help:"Simulate switching policy."`
	} `cmd:"" help:"Run what-if simulations without saving."`
	Policy struct {
		List settings.PolicyListCmd `cmd:"" help:"List available policies." default:"1"`
		Show settings.PolicyShowCmd `cmd:"" help:"Show a policy's weights."`
		Set  settings.PolicySetCmd  `cmd:"" help:"Set the active policy."`
	} `cmd:"" help:"Manage decision policies."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly study-time decision engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"env":            constants.ConnectionEnvVar,
		},
	)

	store, logDir, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatalf("cannot open storage: %v", err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath())

	appCtx := &cli.Context{Store: store}

	// Commands that manage storage or credentials load the store themselves
	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// openStore selects the backend. With the default location, a connection
// string from the environment or keyring takes precedence over the local
// database file.
func openStore(location string) (storage.Provider, string, error) {
	defaultDir, err := cli.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", err
	}

	if location == constants.DefaultConfigPath {
		connStr, _, err := keyring.ResolveConnectionString()
		switch {
		case err == nil:
			return cli.OpenTrustedStore(connStr), defaultDir, nil
		case !errors.Is(err, keyring.ErrNotFound):
			return nil, "", err
		}
	}

	store, err := cli.OpenStore(location)
	if err != nil {
		return nil, "", err
	}
	if _, ok := store.(*postgres.Store); ok {
		return store, defaultDir, nil
	}
	return store, filepath.Dir(store.GetConfigPath()), nil
}

func needsLoad(command string) bool {
	switch {
	case command == "init", command == "doctor":
		return false
	case strings.HasPrefix(command, "keyring"):
		return false
	}
	return true
}
