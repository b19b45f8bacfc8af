// Package tui is the read-mostly dashboard over the current plan and its
// history.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/studypilot/internal/engine"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/tui/components/plan"
	"github.com/julianstephens/studypilot/internal/tui/components/report"
	"github.com/julianstephens/studypilot/internal/tui/components/subjects"
)

// Source loads and recalculates the state shown by the dashboard.
// *cli.Context satisfies it.
type Source interface {
	LoadState() (models.State, error)
	Recalculate(models.State) (models.State, error)
}

type Tab int

const (
	TabPlan Tab = iota
	TabSubjects
	TabRisk
	TabConfidence
	TabInsights
	TabTrends
	tabCount
)

var tabTitles = [tabCount]string{"Plan", "Subjects", "Risk", "Confidence", "Insights", "Trends"}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabTitles[t]
}

// stateLoadedMsg carries the result of a reload or recalculation.
type stateLoadedMsg struct {
	state  models.State
	status string
	err    error
}

type Model struct {
	source    Source
	state     models.State
	analysis  engine.Analysis
	tab       Tab
	keys      KeyMap
	help      help.Model
	planModel plan.Model
	subjects  subjects.Model
	reports   map[Tab]*report.Model
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(source Source) Model {
	m := Model{
		source:    source,
		tab:       TabPlan,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		planModel: plan.New(0, 0),
		subjects:  subjects.New(0, 0),
		reports:   make(map[Tab]*report.Model),
	}
	for _, t := range []Tab{TabRisk, TabConfidence, TabInsights, TabTrends} {
		r := report.New(0, 0)
		m.reports[t] = &r
	}

	state, err := source.LoadState()
	m.apply(stateLoadedMsg{state: state, err: err})
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// apply replaces the displayed state and re-renders every view.
func (m *Model) apply(msg stateLoadedMsg) {
	m.err = msg.err
	m.status = msg.status
	if msg.err != nil {
		return
	}
	m.state = msg.state
	m.analysis = engine.Analyze(msg.state)
	m.planModel.SetPlan(m.state)
	m.subjects.SetSubjects(m.state)
	m.reports[TabRisk].SetContent(renderRisk(m.state))
	m.reports[TabConfidence].SetContent(renderConfidence(m.state))
	m.reports[TabInsights].SetContent(renderInsights(m.state, m.analysis))
	m.reports[TabTrends].SetContent(renderTrends(m.state, m.analysis))
}

func (m Model) reload() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		state, err := source.LoadState()
		return stateLoadedMsg{state: state, status: "Reloaded", err: err}
	}
}

func (m Model) recalculate() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		state, err := source.LoadState()
		if err != nil {
			return stateLoadedMsg{err: err}
		}
		next, err := source.Recalculate(state)
		return stateLoadedMsg{state: next, status: "Plan recalculated", err: err}
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Refresh, m.keys.Recalculate, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down},
		{m.keys.Refresh, m.keys.Recalculate},
	}
}

// Tab returns the active view.
func (m Model) Tab() Tab {
	return m.tab
}
