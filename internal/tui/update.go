package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, status line and help take about four rows
		h, v := docStyle.GetFrameSize()
		w, ht := msg.Width-h, msg.Height-4-v
		m.planModel.SetSize(w, ht)
		m.subjects.SetSize(w, ht)
		for _, r := range m.reports {
			r.SetSize(w, ht)
		}
		return m, nil

	case stateLoadedMsg:
		m.apply(msg)
		return m, nil

	case tea.KeyMsg:
		// Let the subject filter have every key while it is open
		if m.tab == TabSubjects && m.subjects.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.reload()
		case key.Matches(msg, m.keys.Recalculate):
			return m, m.recalculate()
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabPlan:
		m.planModel, cmd = m.planModel.Update(msg)
	case TabSubjects:
		m.subjects, cmd = m.subjects.Update(msg)
	default:
		if r, ok := m.reports[m.tab]; ok {
			*r, cmd = r.Update(msg)
		}
	}
	return m, cmd
}
