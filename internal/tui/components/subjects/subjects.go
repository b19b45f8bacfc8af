// Package subjects lists the roster with each subject's inputs.
package subjects

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studypilot/internal/models"
)

type Item struct {
	Subject models.Subject
	Risk    *models.RiskAssessment
}

func (i Item) Title() string {
	if i.Risk != nil {
		return fmt.Sprintf("%s [%s risk]", i.Subject.Name, i.Risk.RiskLevel)
	}
	return i.Subject.Name
}

func (i Item) Description() string {
	s := i.Subject
	return fmt.Sprintf("credits %d · difficulty %d · interest %d · %.1f h/week",
		s.CreditWeight, s.Difficulty, s.Interest, s.AvailableStudyHours)
}

func (i Item) FilterValue() string { return i.Subject.Name }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Subjects"
	l.SetShowHelp(false)
	l.SetStatusBarItemName("subject", "subjects")
	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No subjects yet. Add one with 'studypilot subject add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m *Model) SetSubjects(state models.State) {
	risks := make(map[string]models.RiskAssessment, len(state.RiskAssessments))
	for _, r := range state.RiskAssessments {
		risks[r.SubjectID] = r
	}
	items := make([]list.Item, len(state.Subjects))
	for i, s := range state.Subjects {
		item := Item{Subject: s}
		if r, ok := risks[s.ID]; ok {
			item.Risk = &r
		}
		items[i] = item
	}
	m.list.SetItems(items)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}
