package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/studypilot/internal/constants"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/models"
)

// LoadState reads the whole application state. A key that is missing or
// holds a document that does not parse falls back to its empty value, so a
// damaged entry never prevents the rest of the state from loading.
func LoadState(p Provider) (models.State, error) {
	var state models.State

	targets := map[string]any{
		constants.KeySubjects:             &state.Subjects,
		constants.KeyPriorityResults:      &state.PriorityResults,
		constants.KeyWeeklyPlans:          &state.WeeklyPlans,
		constants.KeyExecutionLogs:        &state.ExecutionLogs,
		constants.KeyHistoricalPriorities: &state.HistoricalPriorities,
		constants.KeyRiskAssessments:      &state.RiskAssessments,
		constants.KeyRiskHistory:          &state.RiskHistory,
		constants.KeyConfidenceData:       &state.ConfidenceData,
		constants.KeyExecutionBasis:       &state.ExecutionBasis,
		constants.KeyCurrentPolicy:        &state.PolicyID,
		constants.KeyCurrentWeek:          &state.CurrentWeek,
	}

	for _, key := range constants.StateKeys {
		if err := loadKey(p, key, targets[key]); err != nil {
			return models.State{}, err
		}
	}

	if state.PolicyID == "" {
		settings, err := LoadSettings(p)
		if err != nil {
			return models.State{}, err
		}
		state.PolicyID = settings.Policy
	}

	return state, nil
}

func loadKey(p Provider, key string, target any) error {
	data, err := p.Get(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		logger.Warn("Ignoring unreadable stored value", "key", key, "error", err)
		// Unmarshal may have partially filled target
		resetTarget(target)
	}
	return nil
}

func resetTarget(target any) {
	switch v := target.(type) {
	case *string:
		*v = ""
	case *[]models.Subject:
		*v = nil
	case *[]models.PriorityResult:
		*v = nil
	case *[]models.WeeklyPlan:
		*v = nil
	case *[]models.WeeklyExecutionLog:
		*v = nil
	case *[]models.PrioritySnapshot:
		*v = nil
	case *[]models.RiskAssessment:
		*v = nil
	case *[]models.RiskSnapshot:
		*v = nil
	case *[]models.ConfidenceAssessment:
		*v = nil
	case *map[string]models.ExecutionSummary:
		*v = nil
	}
}

// SaveState writes every state key in one batch.
func SaveState(p Provider, state models.State) error {
	values := map[string]any{
		constants.KeySubjects:             nonNil(state.Subjects),
		constants.KeyPriorityResults:      nonNil(state.PriorityResults),
		constants.KeyWeeklyPlans:          nonNil(state.WeeklyPlans),
		constants.KeyExecutionLogs:        nonNil(state.ExecutionLogs),
		constants.KeyHistoricalPriorities: nonNil(state.HistoricalPriorities),
		constants.KeyRiskAssessments:      nonNil(state.RiskAssessments),
		constants.KeyRiskHistory:          nonNil(state.RiskHistory),
		constants.KeyConfidenceData:       nonNil(state.ConfidenceData),
		constants.KeyExecutionBasis:       state.ExecutionBasis,
		constants.KeyCurrentPolicy:        state.PolicyID,
		constants.KeyCurrentWeek:          state.CurrentWeek,
	}

	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", key, err)
		}
		entries[key] = data
	}

	if err := p.PutMany(entries); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	logger.Debug("Saved state", "subjects", len(state.Subjects), "logs", len(state.ExecutionLogs))
	return nil
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ResetState removes every state key. Settings are kept.
func ResetState(p Provider) error {
	for _, key := range constants.StateKeys {
		if err := p.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	logger.Info("State reset")
	return nil
}

// LoadSettings returns the stored settings with defaults applied. Missing
// settings are not an error.
func LoadSettings(p Provider) (models.Settings, error) {
	settings, err := p.GetSettings()
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return models.Settings{}, err
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() models.Settings {
	var settings models.Settings
	models.ApplyDefaultSettings(&settings)
	return settings
}
