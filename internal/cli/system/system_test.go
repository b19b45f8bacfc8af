package system

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/models"
)

func seededContext(t *testing.T) (*cli.Context, func()) {
	t.Helper()
	ctx, _, cleanup := setupTestDoctorDB(t)
	ctx.Now = func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) }
	state := models.State{
		Subjects: []models.Subject{
			{ID: "s1", Name: "Calculus", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 10},
		},
		ExecutionLogs: []models.WeeklyExecutionLog{
			{WeekID: "2026-W10", Entries: []models.ExecutionLogEntry{{SubjectID: "s1", ActualHours: 3, CompletionStatus: models.StatusPartial}}},
		},
	}
	if err := ctx.SaveState(state); err != nil {
		t.Fatal(err)
	}
	return ctx, cleanup
}

func TestExportCmd(t *testing.T) {
	ctx, cleanup := seededContext(t)
	defer cleanup()

	dir := t.TempDir()
	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(dir, "export."+tt.format)
			if err := (&ExportCmd{Format: tt.format, Output: out}).Run(ctx); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			var got Export
			if err := tt.decode(data, &got); err != nil {
				t.Fatalf("failed to decode export: %v", err)
			}
			if len(got.State.Subjects) != 1 || got.State.Subjects[0].Name != "Calculus" {
				t.Errorf("unexpected subjects: %+v", got.State.Subjects)
			}
			if len(got.State.ExecutionLogs) != 1 || got.State.ExecutionLogs[0].WeekID != "2026-W10" {
				t.Errorf("unexpected logs: %+v", got.State.ExecutionLogs)
			}
			if got.Settings.Policy == "" {
				t.Error("expected settings in export")
			}
		})
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	if _, err := Encode(struct{}{}, "toml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestResetCmd(t *testing.T) {
	ctx, cleanup := seededContext(t)
	defer cleanup()

	settings, err := ctx.Settings()
	if err != nil {
		t.Fatal(err)
	}
	settings.MinHours = 3
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&ResetCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	state, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Subjects) != 0 || len(state.ExecutionLogs) != 0 {
		t.Errorf("expected empty state after reset, got %d subjects and %d logs", len(state.Subjects), len(state.ExecutionLogs))
	}
	after, err := ctx.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if after.MinHours != 3 {
		t.Errorf("reset must keep settings, got MinHours %v", after.MinHours)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, store, cleanup := setupTestDoctorDB(t)
	defer cleanup()

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate on current schema failed: %v", err)
	}

	setVersion(t, store, 0)
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := checkSchemaVersion(ctx); err != nil {
		t.Errorf("expected schema to be current after migrate: %v", err)
	}
}
