// Package system holds commands that manage the store itself rather than
// the study data in it.
package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/studypilot/internal/cli"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized studypilot storage at: %s\n", ctx.Store.GetConfigPath())

	// Stores that are not files cannot be deleted, so clear their state instead
	if c.Force && !ctx.IsFileStore() {
		if err := storage.ResetState(ctx.Store); err != nil {
			return err
		}
		if err := ctx.Store.SaveSettings(storage.DefaultSettings()); err != nil {
			return err
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		source, err := cli.OpenStore(c.Source)
		if err != nil {
			return err
		}
		if err := CopyStore(source, ctx.Store); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) wipe(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return nil
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release file locks
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// CopyStore copies settings and every document from src into dst. dst must
// already be initialized; src is loaded and closed here.
func CopyStore(src, dst storage.Provider) error {
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	switch {
	case err == nil:
		if err := dst.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings to destination: %w", err)
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("failed to get settings from source: %w", err)
	}

	fmt.Println("  Copying documents...")
	keys, err := src.Keys()
	if err != nil {
		return fmt.Errorf("failed to list source documents: %w", err)
	}
	sort.Strings(keys)
	docs := make(map[string][]byte, len(keys))
	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		docs[key] = value
	}
	if err := dst.PutMany(docs); err != nil {
		return fmt.Errorf("failed to write documents to destination: %w", err)
	}
	fmt.Printf("    Copied %d documents\n", len(docs))
	return nil
}
