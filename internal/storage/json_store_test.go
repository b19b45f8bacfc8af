package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/studypilot/internal/constants"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
)

func setupJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "profile", "studypilot.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); !errors.Is(err, apperrors.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestJSONStoreInitWritesDefaults(t *testing.T) {
	store := setupJSONStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Policy != constants.DefaultPolicy {
		t.Errorf("expected default policy %q, got %q", constants.DefaultPolicy, settings.Policy)
	}
	if _, err := os.Stat(store.GetConfigPath()); err != nil {
		t.Errorf("expected store file to exist: %v", err)
	}
}

func TestJSONStoreDocumentsPersist(t *testing.T) {
	store := setupJSONStore(t)

	err := store.PutMany(map[string][]byte{
		constants.KeyCurrentWeek:   []byte(`"2026-W11"`),
		constants.KeyCurrentPolicy: []byte(`"deadline"`),
	})
	if err != nil {
		t.Fatalf("PutMany failed: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.Get(constants.KeyCurrentWeek)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `"2026-W11"` {
		t.Errorf("Get = %s", got)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != constants.KeyCurrentPolicy || keys[1] != constants.KeyCurrentWeek {
		t.Errorf("Keys = %v", keys)
	}
}

func TestJSONStoreRejectsInvalidJSON(t *testing.T) {
	store := setupJSONStore(t)

	err := store.PutMany(map[string][]byte{
		constants.KeyCurrentWeek: []byte(`"2026-W11"`),
		constants.KeySubjects:    []byte(`{not json`),
	})
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if _, err := store.Get(constants.KeyCurrentWeek); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected batch to be rejected as a whole, got %v", err)
	}
}

func TestJSONStoreDelete(t *testing.T) {
	store := setupJSONStore(t)

	if err := store.Put(constants.KeyCurrentWeek, []byte(`"2026-W11"`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Delete(constants.KeyCurrentWeek); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(constants.KeyCurrentWeek); err != nil {
		t.Fatalf("Deleting a missing key should be a no-op: %v", err)
	}
	if _, err := store.Get(constants.KeyCurrentWeek); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "settings": {}, "data": {}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(path).Load(); err == nil {
		t.Fatal("expected error for newer storage version")
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "x.json"))
	if _, err := store.Get(constants.KeySubjects); err == nil {
		t.Error("expected error before Load")
	}
}

func TestIsJSONPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"~/.config/studypilot/studypilot.db", false},
		{"/tmp/profile.json", true},
		{"profile.JSON", false},
		{"postgres://localhost/db", false},
	}
	for _, tt := range tests {
		if got := IsJSONPath(tt.path); got != tt.want {
			t.Errorf("IsJSONPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
