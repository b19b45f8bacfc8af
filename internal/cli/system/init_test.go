package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/storage"
	"github.com/julianstephens/studypilot/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	err := cmd.Run(ctx)

	if err != nil {
		t.Errorf("init command failed: %v", err)
	}

	// Verify database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get initial settings: %v", err)
	}
	settings.MinHours = 4
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}
	if err := ctx.SaveState(models.State{Subjects: []models.Subject{{ID: "s1", Name: "Calculus"}}}); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}

	newSettings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings after force: %v", err)
	}
	if newSettings.MinHours != storage.DefaultSettings().MinHours {
		t.Errorf("expected default MinHours, got %v", newSettings.MinHours)
	}
	state, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Subjects) != 0 {
		t.Errorf("expected an empty roster after force, got %d subjects", len(state.Subjects))
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	tempDir := t.TempDir()

	// Source is a JSON store so the copy crosses backends
	sourcePath := filepath.Join(tempDir, "source.json")
	source := storage.NewJSONStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatal(err)
	}
	want := models.State{
		Subjects:    []models.Subject{{ID: "s1", Name: "Calculus", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 10}},
		PolicyID:    "risk_averse",
		CurrentWeek: "2026-W11",
	}
	if err := storage.SaveState(source, want); err != nil {
		t.Fatal(err)
	}
	settings := storage.DefaultSettings()
	settings.Timezone = "UTC"
	if err := source.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := source.Close(); err != nil {
		t.Fatal(err)
	}

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Subjects) != 1 || got.Subjects[0] != want.Subjects[0] {
		t.Errorf("subjects not copied: %+v", got.Subjects)
	}
	if got.PolicyID != want.PolicyID || got.CurrentWeek != want.CurrentWeek {
		t.Errorf("expected policy %q and week %q, got %q and %q", want.PolicyID, want.CurrentWeek, got.PolicyID, got.CurrentWeek)
	}
	gotSettings, err := ctx.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if gotSettings.Timezone != "UTC" {
		t.Errorf("expected copied timezone UTC, got %q", gotSettings.Timezone)
	}
}
