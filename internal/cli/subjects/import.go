package subjects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studypilot/internal/cli"
	apperrors "github.com/julianstephens/studypilot/internal/errors"
	"github.com/julianstephens/studypilot/internal/models"
)

type SubjectImportCmd struct {
	File    string `arg:"" type:"existingfile" help:"YAML or JSON file with a list of subjects."`
	Replace bool   `help:"Replace the current roster instead of appending to it."`
}

// roster accepts either a bare list or a document with a subjects key.
type roster struct {
	Subjects []models.Subject `json:"subjects" yaml:"subjects"`
}

func (c *SubjectImportCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	imported, err := ParseRoster(data)
	if err != nil {
		return err
	}

	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	if c.Replace {
		state.Subjects = imported
	} else {
		state.Subjects = append(state.Subjects, imported...)
	}
	if err := saveRoster(ctx, state); err != nil {
		return err
	}

	fmt.Printf("Imported %d subject(s) from %s\n", len(imported), c.File)
	return nil
}

// ParseRoster decodes a YAML or JSON subject list. Subjects without an id get
// a new one.
func ParseRoster(data []byte) ([]models.Subject, error) {
	var subjects []models.Subject
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: roster is empty", apperrors.ErrInvalidInput)
	}

	unmarshal := yaml.Unmarshal
	if trimmed[0] == '[' || trimmed[0] == '{' {
		unmarshal = json.Unmarshal
	}
	if err := unmarshal(trimmed, &subjects); err != nil {
		var doc roster
		if docErr := unmarshal(trimmed, &doc); docErr != nil {
			return nil, fmt.Errorf("%w: failed to parse roster: %v", apperrors.ErrInvalidInput, err)
		}
		subjects = doc.Subjects
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: roster contains no subjects", apperrors.ErrInvalidInput)
	}

	for i := range subjects {
		subjects[i].Name = strings.TrimSpace(subjects[i].Name)
		if subjects[i].ID == "" {
			subjects[i].ID = uuid.New().String()
		}
	}
	return subjects, nil
}
