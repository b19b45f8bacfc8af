package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studypilot/internal/backup"
	"github.com/julianstephens/studypilot/internal/engine"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/storage"
	"github.com/julianstephens/studypilot/internal/storage/sqlite"
	"github.com/julianstephens/studypilot/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Now overrides the wall clock. Nil means time.Now.
	Now func() time.Time
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite stores are backed up.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// IsSQLite reports whether the active store is a SQLite database file.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// Settings returns the stored settings with defaults applied.
func (c *Context) Settings() (models.Settings, error) {
	return storage.LoadSettings(c.Store)
}

// CurrentTime returns now in the configured timezone.
func (c *Context) CurrentTime() (time.Time, error) {
	settings, err := c.Settings()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(loc), nil
}

func (c *Context) LoadState() (models.State, error) {
	return storage.LoadState(c.Store)
}

func (c *Context) SaveState(state models.State) error {
	return storage.SaveState(c.Store, state)
}

// Recalculate runs the full pipeline over state and persists the result.
func (c *Context) Recalculate(state models.State) (models.State, error) {
	now, err := c.CurrentTime()
	if err != nil {
		return state, err
	}
	next, err := engine.Recalculate(context.Background(), state, now)
	if err != nil {
		return state, err
	}
	if err := c.SaveState(next); err != nil {
		return state, err
	}
	return next, nil
}

// RequirePlan loads the state and fails when nothing has been calculated.
func (c *Context) RequirePlan() (models.State, error) {
	state, err := c.LoadState()
	if err != nil {
		return models.State{}, err
	}
	if len(state.PriorityResults) == 0 {
		if len(state.Subjects) == 0 {
			return state, engine.ErrNoSubjects
		}
		return state, engine.ErrNotCalculated
	}
	return state, nil
}

// FindSubject resolves ref as a subject id, then as a case-insensitive name,
// and returns its index in state.Subjects.
func FindSubject(state models.State, ref string) (int, error) {
	for i, s := range state.Subjects {
		if s.ID == ref {
			return i, nil
		}
	}
	for i, s := range state.Subjects {
		if strings.EqualFold(s.Name, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("subject %q: %w", ref, apperrors.ErrNotFound)
}
