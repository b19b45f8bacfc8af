package constants

const (
	// Settings keys
	SettingPolicy   = "policy"
	SettingMinHours = "min_hours"
	SettingTimezone = "timezone"

	// Default Settings Values
	DefaultPolicy   = "balanced"
	DefaultMinHours = 1.0
	DefaultTimezone = "Local" // Use system local timezone by default
)
