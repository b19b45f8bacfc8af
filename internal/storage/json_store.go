package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
)

const jsonStoreVersion = 1

// document is the on-disk layout of a JSONStore file
type document struct {
	Version  int                        `json:"version"`
	Settings map[string]string          `json:"settings"`
	Data     map[string]json.RawMessage `json:"data"`
}

// JSONStore keeps settings and state in a single JSON file. It is meant for
// portable profiles and tests; the SQLite store is the default.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &document{
		Version:  jsonStoreVersion,
		Settings: models.SettingsToMap(DefaultSettings()),
		Data:     make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.doc != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, jsonStoreVersion)
	}

	// Ensure maps are initialized
	if doc.Settings == nil {
		doc.Settings = make(map[string]string)
	}
	if doc.Data == nil {
		doc.Data = make(map[string]json.RawMessage)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temporary file and renames it over the store
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	if len(s.doc.Settings) == 0 {
		return models.Settings{}, fmt.Errorf("settings %w", apperrors.ErrNotFound)
	}
	return models.MapToSettings(s.doc.Settings)
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = models.SettingsToMap(settings)
	return s.save()
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	value, ok := s.doc.Data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, apperrors.ErrNotFound)
	}
	return append([]byte(nil), value...), nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	return s.PutMany(map[string][]byte{key: value})
}

func (s *JSONStore) PutMany(entries map[string][]byte) error {
	if err := s.loaded(); err != nil {
		return err
	}
	// Validate everything before touching the document
	for key, value := range entries {
		if !json.Valid(value) {
			return fmt.Errorf("value for key %q is not valid JSON", key)
		}
	}
	for key, value := range entries {
		s.doc.Data[key] = append(json.RawMessage(nil), value...)
	}
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Data[key]; !ok {
		return nil
	}
	delete(s.doc.Data, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.doc.Data))
	for k := range s.doc.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// IsJSONPath reports whether a --config value names a JSON file store.
func IsJSONPath(path string) bool {
	return filepath.Ext(path) == ".json"
}

var _ Provider = (*JSONStore)(nil)
