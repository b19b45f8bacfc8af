// Package plan renders the weekly plan as a scrollable table.
package plan

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studypilot/internal/allocation"
	"github.com/julianstephens/studypilot/internal/models"
)

var (
	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

type Model struct {
	table    table.Model
	overload allocation.Overload
	hasPlan  bool
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return Model{table: t}
}

// columns splits width between the subject name and the numeric columns.
func columns(width int) []table.Column {
	const numeric = 12
	name := width - 4*numeric - 10
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Subject", Width: name},
		{Title: "Recommended", Width: numeric},
		{Title: "Available", Width: numeric},
		{Title: "Priority", Width: numeric},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.hasPlan {
		return "No plan yet. Press 'c' to calculate."
	}
	footer := totalStyle.Render(fmt.Sprintf("Total recommended: %.1f of %.1f available hours",
		m.overload.TotalRecommended, m.overload.TotalAvailable))
	if m.overload.Overloaded {
		footer += "\n" + warningStyle.Render(fmt.Sprintf("⚠ Plan exceeds available hours by %.1f", m.overload.Excess))
	}
	return m.table.View() + "\n" + footer
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	// Leave room for the totals footer
	m.table.SetHeight(max(height-2, 3))
}

// SetPlan shows plans in priority rank order.
func (m *Model) SetPlan(state models.State) {
	m.hasPlan = len(state.WeeklyPlans) > 0
	plans := models.PlanIndex(state.WeeklyPlans)
	rows := make([]table.Row, 0, len(state.PriorityResults))
	for _, r := range state.PriorityResults {
		p, ok := plans[r.SubjectID]
		if !ok {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprint(r.Rank),
			r.SubjectName,
			fmt.Sprintf("%.1f h", p.RecommendedHours),
			fmt.Sprintf("%.1f h", p.AvailableHours),
			fmt.Sprintf("%.2f", p.PriorityScore),
		})
	}
	m.table.SetRows(rows)
	m.overload = allocation.CheckOverload(state.WeeklyPlans, state.Subjects)
}

// Rows returns the number of plan rows shown.
func (m Model) Rows() int {
	return len(m.table.Rows())
}
