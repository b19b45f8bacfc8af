package system

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/constants"
	"github.com/julianstephens/studypilot/internal/models"
)

// Export is the document written by the export command.
type Export struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Settings   models.Settings `json:"settings" yaml:"settings"`
	State      models.State    `json:"state" yaml:"state"`
}

type ExportCmd struct {
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json or yaml)."`
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	now, err := ctx.CurrentTime()
	if err != nil {
		return err
	}

	data, err := Encode(Export{
		Version:    constants.Version,
		ExportedAt: now,
		Settings:   settings,
		State:      state,
	}, c.Format)
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(c.Output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

// Encode renders v as indented JSON or YAML.
func Encode(v any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(v)
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
