package subjects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/studypilot/internal/cli"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/validation"
)

type SubjectAddCmd struct {
	Name        string  `arg:"" optional:"" help:"Subject name."`
	Credits     int     `short:"c" help:"Credit weight (1-10)." default:"3"`
	Difficulty  int     `short:"d" help:"Difficulty (1-5)." default:"3"`
	Interest    int     `short:"i" help:"Interest (1-5)." default:"3"`
	Hours       float64 `short:"H" help:"Available study hours per week." default:"5"`
	Interactive bool    `help:"Fill in the subject with an interactive form."`
}

func (c *SubjectAddCmd) Validate() error {
	if !c.Interactive && strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("subject name is required unless --interactive is set")
	}
	return nil
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	subject := models.Subject{
		ID:                  uuid.New().String(),
		Name:                strings.TrimSpace(c.Name),
		CreditWeight:        c.Credits,
		Difficulty:          c.Difficulty,
		Interest:            c.Interest,
		AvailableStudyHours: c.Hours,
	}

	if c.Interactive {
		if err := runSubjectForm(&subject); err != nil {
			return err
		}
	}

	result := validation.New().ValidateSubject(subject)
	if err := result.Err(); err != nil {
		return fmt.Errorf("invalid subject: %w", err)
	}

	state, err := ctx.LoadState()
	if err != nil {
		return err
	}
	state.Subjects = append(state.Subjects, subject)
	if err := saveRoster(ctx, state); err != nil {
		return err
	}

	fmt.Printf("Added subject: %s (ID: %s)\n", subject.Name, subject.ID)
	return nil
}

// subjectForm holds the string values bound to the form inputs.
type subjectForm struct {
	Name       string
	Credits    string
	Difficulty string
	Interest   string
	Hours      string
}

func runSubjectForm(subject *models.Subject) error {
	fm := subjectForm{
		Name:       subject.Name,
		Credits:    strconv.Itoa(subject.CreditWeight),
		Difficulty: strconv.Itoa(subject.Difficulty),
		Interest:   strconv.Itoa(subject.Interest),
		Hours:      strconv.FormatFloat(subject.AvailableStudyHours, 'f', -1, 64),
	}

	if err := newSubjectForm(&fm).Run(); err != nil {
		return err
	}

	// Inputs were validated by the form
	subject.Name = strings.TrimSpace(fm.Name)
	subject.CreditWeight, _ = strconv.Atoi(fm.Credits)
	subject.Difficulty, _ = strconv.Atoi(fm.Difficulty)
	subject.Interest, _ = strconv.Atoi(fm.Interest)
	subject.AvailableStudyHours, _ = strconv.ParseFloat(fm.Hours, 64)
	return nil
}

// newSubjectForm creates a form for entering a subject's attributes.
func newSubjectForm(fm *subjectForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Credit weight (1-10)").
				Value(&fm.Credits).
				Validate(intRange(validation.MinCreditWeight, validation.MaxCreditWeight)),
			huh.NewInput().
				Title("Difficulty (1-5)").
				Value(&fm.Difficulty).
				Validate(intRange(validation.MinRating, validation.MaxRating)),
			huh.NewInput().
				Title("Interest (1-5)").
				Value(&fm.Interest).
				Validate(intRange(validation.MinRating, validation.MaxRating)),
			huh.NewInput().
				Title("Available hours per week").
				Value(&fm.Hours).
				Validate(func(s string) error {
					h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number of hours")
					}
					if h < 0 || h > validation.MaxWeeklyHours {
						return fmt.Errorf("hours must be between 0 and %d", validation.MaxWeeklyHours)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func intRange(lo, hi int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if i < lo || i > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}
