package tracking

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/engine"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
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

func seedPlan(t *testing.T, ctx *cli.Context) models.State {
	t.Helper()
	state := models.State{
		Subjects: []models.Subject{
			{ID: "s1", Name: "Calculus", CreditWeight: 4, Difficulty: 5, Interest: 2, AvailableStudyHours: 10},
			{ID: "s2", Name: "History", CreditWeight: 2, Difficulty: 2, Interest: 4, AvailableStudyHours: 6},
		},
	}
	state, err := ctx.Recalculate(state)
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return state
}

func TestLogRecordCmdValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     LogRecordCmd
		wantErr bool
	}{
		{"entries", LogRecordCmd{Entries: []string{"s1=2"}}, false},
		{"interactive", LogRecordCmd{Interactive: true}, false},
		{"nothing", LogRecordCmd{}, true},
		{"valid week", LogRecordCmd{Entries: []string{"s1=2"}, Week: "2026-W3"}, false},
		{"bad week", LogRecordCmd{Entries: []string{"s1=2"}, Week: "2026-03"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseEntries(t *testing.T) {
	state := models.State{
		Subjects: []models.Subject{
			{ID: "s1", Name: "Calculus"},
			{ID: "s2", Name: "History"},
		},
		WeeklyPlans: []models.WeeklyPlan{
			{SubjectID: "s1", RecommendedHours: 5},
			{SubjectID: "s2", RecommendedHours: 3},
		},
	}

	tests := []struct {
		name       string
		arg        string
		wantID     string
		wantHours  float64
		wantStatus models.CompletionStatus
		wantErr    bool
	}{
		{"explicit status", "s1=2:partial", "s1", 2, models.StatusPartial, false},
		{"by name", "history=3:completed", "s2", 3, models.StatusCompleted, false},
		{"inferred completed", "s1=6", "s1", 6, models.StatusCompleted, false},
		{"inferred partial", "s2=1.5", "s2", 1.5, models.StatusPartial, false},
		{"inferred skipped", "s2=0", "s2", 0, models.StatusSkipped, false},
		{"missing separator", "s1", "", 0, "", true},
		{"bad hours", "s1=abc", "", 0, "", true},
		{"unknown subject", "s9=1", "", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseEntries([]string{tt.arg}, state)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEntries() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			e := entries[0]
			if e.SubjectID != tt.wantID || e.ActualHours != tt.wantHours || e.CompletionStatus != tt.wantStatus {
				t.Errorf("got %+v, want %s %.1f %s", e, tt.wantID, tt.wantHours, tt.wantStatus)
			}
		})
	}
}

func TestLogRecordCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	seeded := seedPlan(t, ctx)

	cmd := &LogRecordCmd{Entries: []string{"s1=4:partial", "History=2:completed"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("log record failed: %v", err)
	}

	state, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if len(state.ExecutionLogs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(state.ExecutionLogs))
	}
	log := state.ExecutionLogs[0]
	if log.WeekID != "2026-W11" {
		t.Errorf("expected the tracked week, got %q", log.WeekID)
	}
	if log.PlannedHours != models.TotalRecommendedHours(seeded.WeeklyPlans) {
		t.Errorf("expected planned hours %.2f, got %.2f", models.TotalRecommendedHours(seeded.WeeklyPlans), log.PlannedHours)
	}
	if len(log.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(log.Entries))
	}

	// Same week again replaces.
	if err := (&LogRecordCmd{Entries: []string{"s1=1:skipped"}}).Run(ctx); err != nil {
		t.Fatalf("second record failed: %v", err)
	}
	state, _ = ctx.LoadState()
	if len(state.ExecutionLogs) != 1 || len(state.ExecutionLogs[0].Entries) != 1 {
		t.Errorf("expected the week to be replaced, got %+v", state.ExecutionLogs)
	}

	if err := (&LogRecordCmd{Entries: []string{"s1=3"}, Week: "2026-W12"}).Run(ctx); err != nil {
		t.Fatalf("record for explicit week failed: %v", err)
	}
	state, _ = ctx.LoadState()
	if len(state.ExecutionLogs) != 2 {
		t.Errorf("expected a second week, got %d", len(state.ExecutionLogs))
	}
}

func TestLogRecordCmdRejectsInvalidLog(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()
	seedPlan(t, ctx)

	tests := []struct {
		name    string
		entries []string
	}{
		{"bad status", []string{"s1=2:done"}},
		{"duplicate subject", []string{"s1=2", "Calculus=1"}},
		{"too many hours", []string{"s1=200"}},
		{"negative hours", []string{"s1=-1:partial"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&LogRecordCmd{Entries: tt.entries}).Run(ctx)
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	state, _ := ctx.LoadState()
	if len(state.ExecutionLogs) != 0 {
		t.Error("rejected logs must not be stored")
	}
}

func TestLogRecordCmdEmptyRoster(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	err := (&LogRecordCmd{Entries: []string{"s1=2"}}).Run(ctx)
	if !errors.Is(err, engine.ErrNoSubjects) {
		t.Errorf("expected ErrNoSubjects, got %v", err)
	}
}

func TestLogListCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&LogListCmd{}).Run(ctx); err != nil {
		t.Errorf("list with no logs failed: %v", err)
	}

	seedPlan(t, ctx)
	for _, week := range []string{"2026-W10", "2026-W9"} {
		if err := (&LogRecordCmd{Entries: []string{"s1=3", "s2=1"}, Week: week}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&LogListCmd{}).Run(ctx); err != nil {
		t.Errorf("log list failed: %v", err)
	}
	if err := (&LogListCmd{Week: "2026-W9"}).Run(ctx); err != nil {
		t.Errorf("log list for a week failed: %v", err)
	}
	if err := (&LogListCmd{Week: "2026-W1"}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unrecorded week, got %v", err)
	}
}

func TestWeekCommands(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	state := models.State{CurrentWeek: "2026-W8"}
	if err := ctx.SaveState(state); err != nil {
		t.Fatal(err)
	}

	if err := (&WeekCurrentCmd{}).Run(ctx); err != nil {
		t.Errorf("week current failed: %v", err)
	}
	if err := (&WeekNewCmd{}).Run(ctx); err != nil {
		t.Fatalf("week new failed: %v", err)
	}

	state, err := ctx.LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if state.CurrentWeek != "2026-W11" {
		t.Errorf("expected week 2026-W11, got %q", state.CurrentWeek)
	}
}
