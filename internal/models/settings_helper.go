package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studypilot/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingPolicy:
			settings.Policy = value
		case constants.SettingMinHours:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing min_hours: %w", err)
			}
			settings.MinHours = v
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingPolicy:   settings.Policy,
		constants.SettingMinHours: strconv.FormatFloat(settings.MinHours, 'f', -1, 64),
		constants.SettingTimezone: settings.Timezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Policy == "" {
		settings.Policy = constants.DefaultPolicy
	}
	if settings.MinHours <= 0 {
		settings.MinHours = constants.DefaultMinHours
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
