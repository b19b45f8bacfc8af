package models

// Settings represents application-wide settings
type Settings struct {
	Policy   string  `json:"policy" yaml:"policy"`       // active decision policy id
	MinHours float64 `json:"min_hours" yaml:"min_hours"` // per-subject floor checked by the minimum hours constraint
	Timezone string  `json:"timezone" yaml:"timezone"`   // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
}
