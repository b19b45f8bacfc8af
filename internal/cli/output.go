package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/studypilot/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// NewTable returns a bordered table with the shared header styling.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Title prints a styled section heading.
func Title(s string) {
	fmt.Println(TitleStyle.Render(s))
}

// LevelStyle colours a risk or confidence level. High risk is bad and high
// confidence is good, so callers pass invert for confidence.
func LevelStyle(level models.Level, invert bool) lipgloss.Style {
	bad, good := DangerStyle, SuccessStyle
	if invert {
		bad, good = good, bad
	}
	switch level {
	case models.LevelHigh:
		return bad
	case models.LevelLow:
		return good
	default:
		return WarningStyle
	}
}

// Hours formats an hour count the way plans are displayed.
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}
