package storage

import "github.com/julianstephens/studypilot/internal/models"

// Provider persists settings and the application state. State is kept as
// one JSON document per key; see constants.StateKeys.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Documents
	// Get returns the document stored under key, or an error wrapping
	// errors.ErrNotFound when the key has never been written.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// PutMany writes every entry or none of them.
	PutMany(entries map[string][]byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
