// Package constraints checks a weekly plan against a fixed catalog of hard
// and soft rules.
package constraints

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/studypilot/internal/constants"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/stats"
)

type Kind string

const (
	Hard Kind = "hard"
	Soft Kind = "soft"
)

type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityAdvisory Severity = "advisory"
)

// Constraint ids, in evaluation order.
const (
	TotalHours          = "total_hours"
	IndividualCapacity  = "individual_capacity"
	MinimumHours        = "minimum_hours"
	InterestAlignment   = "interest_alignment"
	WorkloadBalance     = "workload_balance"
	ConfidenceAlignment = "confidence_alignment"
)

// Config tunes the configurable checks. The zero value uses defaults.
type Config struct {
	MinHours float64
}

func (c Config) minHours() float64 {
	if c.MinHours <= 0 {
		return constants.DefaultMinHours
	}
	return c.MinHours
}

// Detail names one subject that tripped a check.
type Detail struct {
	SubjectID       string       `json:"subject_id"`
	SubjectName     string       `json:"subject_name"`
	Recommended     float64      `json:"recommended,omitempty"`
	Available       float64      `json:"available,omitempty"`
	Minimum         float64      `json:"minimum,omitempty"`
	Excess          float64      `json:"excess,omitempty"`
	Interest        int          `json:"interest,omitempty"`
	ConfidenceLevel models.Level `json:"confidence_level,omitempty"`
}

// Result is the outcome of one check.
type Result struct {
	ConstraintID string   `json:"constraint_id"`
	Name         string   `json:"name"`
	Kind         Kind     `json:"kind"`
	Satisfied    bool     `json:"satisfied"`
	Violation    bool     `json:"violation"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Details      []Detail `json:"details,omitempty"`
	// CoefficientOfVariation is only set by the workload balance check.
	CoefficientOfVariation *float64 `json:"coefficient_of_variation,omitempty"`
}

// Evaluation aggregates every check in catalog order.
type Evaluation struct {
	Hard              []Result `json:"hard"`
	Soft              []Result `json:"soft"`
	AllSatisfied      bool     `json:"all_satisfied"`
	HasHardViolations bool     `json:"has_hard_violations"`
	HasSoftViolations bool     `json:"has_soft_violations"`
}

// input is what every check sees. confidence is nil when no confidence data
// is available.
type input struct {
	subjects   map[string]models.Subject
	plans      []models.WeeklyPlan
	cfg        Config
	confidence []models.ConfidenceAssessment
	allSubs    []models.Subject
}

// Constraint is one catalog entry.
type Constraint struct {
	ID    string
	Name  string
	Kind  Kind
	check func(in input) Result
}

var catalog = []Constraint{
	{ID: TotalHours, Name: "Total Available Hours", Kind: Hard, check: checkTotalHours},
	{ID: IndividualCapacity, Name: "Individual Subject Capacity", Kind: Hard, check: checkIndividualCapacity},
	{ID: MinimumHours, Name: "Minimum Study Hours", Kind: Hard, check: checkMinimumHours},
	{ID: InterestAlignment, Name: "Interest Alignment", Kind: Soft, check: checkInterestAlignment},
	{ID: WorkloadBalance, Name: "Workload Balance", Kind: Soft, check: checkWorkloadBalance},
	{ID: ConfidenceAlignment, Name: "Confidence Alignment", Kind: Soft, check: checkConfidenceAlignment},
}

// Catalog lists the constraints in evaluation order.
func Catalog() []Constraint {
	out := make([]Constraint, len(catalog))
	copy(out, catalog)
	return out
}

// Evaluate runs the catalog against a plan. Pass nil confidence when no
// confidence data exists.
func Evaluate(subjects []models.Subject, plans []models.WeeklyPlan, cfg Config, confidence []models.ConfidenceAssessment) Evaluation {
	in := input{
		subjects:   make(map[string]models.Subject, len(subjects)),
		plans:      plans,
		cfg:        cfg,
		confidence: confidence,
		allSubs:    subjects,
	}
	for _, s := range subjects {
		in.subjects[s.ID] = s
	}

	eval := Evaluation{AllSatisfied: true}
	for _, c := range catalog {
		r := c.check(in)
		r.ConstraintID = c.ID
		r.Name = c.Name
		r.Kind = c.Kind
		if c.Kind == Hard {
			eval.Hard = append(eval.Hard, r)
			if r.Violation {
				eval.HasHardViolations = true
				eval.AllSatisfied = false
			}
			continue
		}
		eval.Soft = append(eval.Soft, r)
		if r.Violation {
			eval.HasSoftViolations = true
		}
	}
	return eval
}

// Summary renders hard violations then soft advisories, or a single line when
// nothing fired.
func Summary(eval Evaluation) string {
	var lines []string
	if eval.HasHardViolations {
		lines = append(lines, "⚠️ HARD CONSTRAINT VIOLATIONS:")
		lines = appendViolations(lines, eval.Hard)
	}
	if eval.HasSoftViolations {
		lines = append(lines, "ℹ️ SOFT CONSTRAINT ADVISORIES:")
		lines = appendViolations(lines, eval.Soft)
	}
	if len(lines) == 0 {
		return "✓ All constraints satisfied."
	}
	return strings.Join(lines, "\n")
}

func appendViolations(lines []string, results []Result) []string {
	for _, r := range results {
		if r.Violation {
			lines = append(lines, fmt.Sprintf("  • %s: %s", r.Name, r.Message))
		}
	}
	return lines
}

func checkTotalHours(in input) Result {
	recommended := models.TotalRecommendedHours(in.plans)
	available := models.TotalAvailableHours(in.allSubs)
	if recommended > available {
		return Result{
			Violation: true,
			Severity:  SeverityError,
			Message: fmt.Sprintf("Total recommended hours (%.1f) exceeds total available hours (%s) by %.1f hours.",
				recommended, formatHours(available), recommended-available),
		}
	}
	return Result{
		Satisfied: true,
		Severity:  SeverityOK,
		Message:   fmt.Sprintf("Total recommended hours (%.1f) within available capacity (%s).", recommended, formatHours(available)),
	}
}

func checkIndividualCapacity(in input) Result {
	var details []Detail
	for _, plan := range in.plans {
		subject, ok := in.subjects[plan.SubjectID]
		if ok && plan.RecommendedHours > subject.AvailableStudyHours {
			details = append(details, Detail{
				SubjectID:   plan.SubjectID,
				SubjectName: plan.SubjectName,
				Recommended: plan.RecommendedHours,
				Available:   subject.AvailableStudyHours,
				Excess:      plan.RecommendedHours - subject.AvailableStudyHours,
			})
		}
	}
	if len(details) == 0 {
		return Result{Satisfied: true, Severity: SeverityOK, Message: "All recommendations within individual subject capacities."}
	}

	parts := make([]string, len(details))
	for i, d := range details {
		parts[i] = fmt.Sprintf("%s (%.1fh excess)", d.SubjectName, d.Excess)
	}
	return Result{
		Violation: true,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("%d subject(s) exceed available hours: %s.", len(details), strings.Join(parts, ", ")),
		Details:   details,
	}
}

func checkMinimumHours(in input) Result {
	minimum := in.cfg.minHours()
	var details []Detail
	for _, plan := range in.plans {
		if plan.RecommendedHours < minimum {
			details = append(details, Detail{
				SubjectID:   plan.SubjectID,
				SubjectName: plan.SubjectName,
				Recommended: plan.RecommendedHours,
				Minimum:     minimum,
			})
		}
	}
	if len(details) == 0 {
		return Result{Satisfied: true, Severity: SeverityOK, Message: "All subjects meet minimum hour requirements."}
	}
	return Result{
		Violation: true,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("%d subject(s) below minimum hours.", len(details)),
		Details:   details,
	}
}

func checkInterestAlignment(in input) Result {
	var details []Detail
	for _, plan := range in.plans {
		subject, ok := in.subjects[plan.SubjectID]
		if !ok {
			continue
		}
		ratio := stats.SafeDiv(plan.RecommendedHours, subject.AvailableStudyHours)
		expected := float64(subject.Interest) / 5
		if math.Abs(ratio-expected) > 0.2 {
			details = append(details, Detail{
				SubjectID:   plan.SubjectID,
				SubjectName: plan.SubjectName,
				Interest:    subject.Interest,
			})
		}
	}
	r := Result{Severity: SeverityAdvisory, Details: details}
	if len(details) == 0 {
		r.Satisfied = true
		r.Message = "Recommendations align well with interest levels."
	} else {
		r.Violation = true
		r.Message = fmt.Sprintf("%d subject(s) show interest misalignment.", len(details))
	}
	return r
}

func checkWorkloadBalance(in input) Result {
	if len(in.plans) < 2 {
		return Result{Satisfied: true, Severity: SeverityOK, Message: "Insufficient subjects for balance analysis."}
	}

	hours := make([]float64, len(in.plans))
	for i, p := range in.plans {
		hours[i] = p.RecommendedHours
	}
	cv := stats.CoefficientOfVariation(hours)

	r := Result{Severity: SeverityAdvisory, CoefficientOfVariation: &cv}
	if cv > 0.5 {
		r.Violation = true
		r.Message = fmt.Sprintf("Workload is imbalanced (CV: %.2f).", cv)
	} else {
		r.Satisfied = true
		r.Message = fmt.Sprintf("Workload is reasonably balanced (CV: %.2f).", cv)
	}
	return r
}

func checkConfidenceAlignment(in input) Result {
	if in.confidence == nil {
		return Result{Satisfied: true, Severity: SeverityOK, Message: "Confidence data not available."}
	}

	levels := models.ConfidenceIndex(in.confidence)
	var details []Detail
	for _, plan := range in.plans {
		c, ok := levels[plan.SubjectID]
		if !ok || c.ConfidenceLevel != models.LevelLow {
			continue
		}
		subject, ok := in.subjects[plan.SubjectID]
		if ok && plan.RecommendedHours > subject.AvailableStudyHours*0.7 {
			details = append(details, Detail{
				SubjectID:       plan.SubjectID,
				SubjectName:     plan.SubjectName,
				Recommended:     plan.RecommendedHours,
				Available:       subject.AvailableStudyHours,
				ConfidenceLevel: models.LevelLow,
			})
		}
	}

	r := Result{Severity: SeverityAdvisory, Details: details}
	if len(details) == 0 {
		r.Satisfied = true
		r.Message = "Recommendations align with confidence levels."
	} else {
		r.Violation = true
		r.Message = fmt.Sprintf("%d low-confidence subject(s) have high hour allocations.", len(details))
	}
	return r
}

// formatHours prints hours without trailing zeros.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
