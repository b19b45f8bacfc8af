package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/studypilot/internal/storage"
	"github.com/julianstephens/studypilot/internal/storage/postgres"
	"github.com/julianstephens/studypilot/internal/storage/sqlite"
)

// OpenStore picks a backend for location: a PostgreSQL URL, a .json file,
// or a SQLite database file. URLs that embed a password are rejected; put
// those in the keyring or the connection environment variable instead.
func OpenStore(location string) (storage.Provider, error) {
	if postgres.IsConnString(location) {
		if _, err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: use 'studypilot keyring set' or a .pgpass file for passwords", err)
			}
			return nil, err
		}
		return postgres.New(location), nil
	}

	path, err := ExpandPath(location)
	if err != nil {
		return nil, err
	}
	if storage.IsJSONPath(path) {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// OpenTrustedStore opens a connection string from a trusted source (the
// keyring or environment), where embedded passwords are allowed.
func OpenTrustedStore(connStr string) storage.Provider {
	return postgres.New(connStr)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsFileStore reports whether the store lives in a local file.
func (c *Context) IsFileStore() bool {
	switch c.Store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	}
	return false
}
