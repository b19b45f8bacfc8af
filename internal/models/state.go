package models

// State is the caller-owned application state. Pipeline stages take a State
// and return a new one; nothing mutates a State in place.
type State struct {
	Subjects             []Subject              `json:"subjects" yaml:"subjects"`
	PriorityResults      []PriorityResult       `json:"priority_results" yaml:"priority_results"`
	WeeklyPlans          []WeeklyPlan           `json:"weekly_plans" yaml:"weekly_plans"`
	ExecutionLogs        []WeeklyExecutionLog   `json:"execution_logs" yaml:"execution_logs"`
	HistoricalPriorities []PrioritySnapshot     `json:"historical_priorities" yaml:"historical_priorities"`
	RiskAssessments      []RiskAssessment       `json:"risk_assessments" yaml:"risk_assessments"`
	RiskHistory          []RiskSnapshot         `json:"risk_history" yaml:"risk_history"`
	ConfidenceData       []ConfidenceAssessment `json:"confidence_data" yaml:"confidence_data"`
	// ExecutionBasis is the execution history the current priorities were
	// scored against, keyed by subject id.
	ExecutionBasis map[string]ExecutionSummary `json:"execution_basis" yaml:"execution_basis"`
	PolicyID             string                 `json:"policy_id" yaml:"policy_id"`
	CurrentWeek          string                 `json:"current_week" yaml:"current_week"`
}

// Clone returns a deep copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	out.Subjects = CloneSubjects(s.Subjects)
	out.PriorityResults = clonePriorities(s.PriorityResults)
	out.WeeklyPlans = clonePlans(s.WeeklyPlans)
	out.ExecutionLogs = cloneLogs(s.ExecutionLogs)
	if s.HistoricalPriorities != nil {
		out.HistoricalPriorities = make([]PrioritySnapshot, len(s.HistoricalPriorities))
		for i, snap := range s.HistoricalPriorities {
			out.HistoricalPriorities[i] = snap
			out.HistoricalPriorities[i].Results = clonePriorities(snap.Results)
		}
	}
	out.RiskAssessments = append([]RiskAssessment(nil), s.RiskAssessments...)
	if s.RiskHistory != nil {
		out.RiskHistory = make([]RiskSnapshot, len(s.RiskHistory))
		for i, snap := range s.RiskHistory {
			out.RiskHistory[i] = snap
			out.RiskHistory[i].Risks = append([]RiskAssessment(nil), snap.Risks...)
		}
	}
	if s.ConfidenceData != nil {
		out.ConfidenceData = make([]ConfidenceAssessment, len(s.ConfidenceData))
		for i, c := range s.ConfidenceData {
			out.ConfidenceData[i] = c
			out.ConfidenceData[i].Factors = append([]string(nil), c.Factors...)
		}
	}
	out.ExecutionBasis = cloneSummaries(s.ExecutionBasis)
	return out
}

// SubjectIndex maps subject id to its position in Subjects.
func (s State) SubjectIndex() map[string]int {
	idx := make(map[string]int, len(s.Subjects))
	for i, sub := range s.Subjects {
		idx[sub.ID] = i
	}
	return idx
}

// FindSubject returns the subject with the given id.
func (s State) FindSubject(id string) (Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subject{}, false
}

// PlanIndex maps subject id to its weekly plan.
func PlanIndex(plans []WeeklyPlan) map[string]WeeklyPlan {
	idx := make(map[string]WeeklyPlan, len(plans))
	for _, p := range plans {
		idx[p.SubjectID] = p
	}
	return idx
}

// PriorityIndex maps subject id to its priority result.
func PriorityIndex(results []PriorityResult) map[string]PriorityResult {
	idx := make(map[string]PriorityResult, len(results))
	for _, r := range results {
		idx[r.SubjectID] = r
	}
	return idx
}

// ConfidenceIndex maps subject id to its confidence assessment.
func ConfidenceIndex(data []ConfidenceAssessment) map[string]ConfidenceAssessment {
	idx := make(map[string]ConfidenceAssessment, len(data))
	for _, c := range data {
		idx[c.SubjectID] = c
	}
	return idx
}
