package scenarios

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/scenario"
	"github.com/julianstephens/studypilot/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
		Now:   func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) },
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func seedPlan(t *testing.T, ctx *cli.Context, subjects ...models.Subject) models.State {
	t.Helper()
	if len(subjects) == 0 {
		subjects = []models.Subject{
			{ID: "s1", Name: "Calculus", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 10},
			{ID: "s2", Name: "History", CreditWeight: 2, Difficulty: 2, Interest: 4, AvailableStudyHours: 6},
			{ID: "s3", Name: "Biology", CreditWeight: 3, Difficulty: 3, Interest: 3, AvailableStudyHours: 5},
		}
	}
	state, err := ctx.Recalculate(models.State{Subjects: subjects})
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return state
}

func TestScenariosRequirePlan(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := ctx.SaveState(models.State{Subjects: []models.Subject{{ID: "s1", Name: "Calculus"}}}); err != nil {
		t.Fatal(err)
	}
	commands := map[string]interface{ Run(*cli.Context) error }{
		"drop":   &DropCmd{Subject: "s1"},
		"hours":  &HoursCmd{Subject: "s1", Hours: 3},
		"policy": &PolicyCmd{ID: "balanced"},
	}
	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			if err := cmd.Run(ctx); !errors.Is(err, engine.ErrNotCalculated) {
				t.Errorf("expected ErrNotCalculated, got %v", err)
			}
		})
	}
}

func TestScenariosLeaveStateUntouched(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	before := seedPlan(t, ctx)

	commands := map[string]interface{ Run(*cli.Context) error }{
		"drop by id":    &DropCmd{Subject: "s2"},
		"drop by name":  &DropCmd{Subject: "biology"},
		"hours":         &HoursCmd{Subject: "s1", Hours: 2},
		"hours to zero": &HoursCmd{Subject: "History", Hours: 0},
		"policy":        &PolicyCmd{ID: "exam_focused"},
	}
	for name, cmd := range commands {
		t.Run(name, func(t *testing.T) {
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("scenario failed: %v", err)
			}
		})
	}

	after, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Subjects) != len(before.Subjects) || len(after.WeeklyPlans) != len(before.WeeklyPlans) {
		t.Error("simulations must not change the stored state")
	}
	for i := range after.WeeklyPlans {
		if after.WeeklyPlans[i] != before.WeeklyPlans[i] {
			t.Errorf("plan %d changed: %+v != %+v", i, after.WeeklyPlans[i], before.WeeklyPlans[i])
		}
	}
	if len(after.HistoricalPriorities) != 1 {
		t.Errorf("simulations must not add history, got %d snapshots", len(after.HistoricalPriorities))
	}
}

func TestDropCmdLastSubject(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	seedPlan(t, ctx, models.Subject{ID: "s1", Name: "Calculus", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 10})

	if err := (&DropCmd{Subject: "s1"}).Run(ctx); !errors.Is(err, scenario.ErrLastSubject) {
		t.Errorf("expected ErrLastSubject, got %v", err)
	}
}

func TestScenarioUnknownSubject(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	seedPlan(t, ctx)

	if err := (&DropCmd{Subject: "Astrology"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScenarioValidate(t *testing.T) {
	if err := (&HoursCmd{Subject: "s1", Hours: -2}).Validate(); !errors.Is(err, engine.ErrInvalidHours) {
		t.Errorf("expected ErrInvalidHours, got %v", err)
	}
	if err := (&PolicyCmd{ID: "nope"}).Validate(); err == nil {
		t.Error("expected error for unknown policy")
	}
	if err := (&PolicyCmd{ID: "balanced"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
