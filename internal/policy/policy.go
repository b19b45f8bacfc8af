// Package policy is the fixed catalog of decision policies. Each policy is
// an immutable weight vector over the priority factors.
package policy

// ID identifies a policy in the catalog.
type ID string

const (
	Balanced       ID = "balanced"
	ExamFocused    ID = "exam_focused"
	RiskAverse     ID = "risk_averse"
	ExecutionAware ID = "execution_aware"
)

// Weights is the factor weight vector. The catalog's vectors sum to 1.
type Weights struct {
	Interest   float64 `json:"interest" yaml:"interest"`
	Credits    float64 `json:"credits" yaml:"credits"`
	Difficulty float64 `json:"difficulty" yaml:"difficulty"`
	Execution  float64 `json:"execution" yaml:"execution"`
}

type Policy struct {
	ID          ID      `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Weights     Weights `json:"weights" yaml:"weights"`
	Rationale   string  `json:"rationale" yaml:"rationale"`
}

// UsesExecution reports whether execution history affects the score.
func (p Policy) UsesExecution() bool {
	return p.Weights.Execution > 0
}

var catalog = [...]Policy{
	{
		ID:          Balanced,
		Name:        "Balanced Policy",
		Description: "Balances all factors equally, suitable for general academic planning.",
		Weights:     Weights{Interest: 0.4, Credits: 0.3, Difficulty: 0.3, Execution: 0.0},
		Rationale:   "This policy assumes equal importance across interest, credit weight, and difficulty. It is the default policy for users who want a neutral, balanced approach to prioritization.",
	},
	{
		ID:          ExamFocused,
		Name:        "Exam-Focused Policy",
		Description: "Prioritizes high-credit subjects and difficulty, suitable for exam preparation.",
		Weights:     Weights{Interest: 0.2, Credits: 0.5, Difficulty: 0.3, Execution: 0.0},
		Rationale:   "This policy emphasizes credit weight and difficulty because exams often carry significant weight in final grades. Lower interest weight reflects that exam preparation may not always align with personal interest but is academically necessary.",
	},
	{
		ID:          RiskAverse,
		Name:        "Risk-Averse Policy",
		Description: "Prioritizes manageable difficulty and high interest, minimizing risk of failure.",
		Weights:     Weights{Interest: 0.5, Credits: 0.2, Difficulty: 0.3, Execution: 0.0},
		Rationale:   "This policy favors subjects with lower difficulty and higher interest to reduce the risk of poor performance. It is suitable for students who want to build confidence or are managing multiple challenging commitments.",
	},
	{
		ID:          ExecutionAware,
		Name:        "Execution-Aware Policy",
		Description: "Incorporates historical execution patterns to adapt recommendations.",
		Weights:     Weights{Interest: 0.3, Credits: 0.3, Difficulty: 0.2, Execution: 0.2},
		Rationale:   "This policy learns from past behavior by incorporating historical execution rates. Subjects where you consistently meet or exceed recommendations get higher priority, reflecting realistic capacity assessment.",
	},
}

// Get returns the policy with the given id, falling back to Balanced for
// anything unknown.
func Get(id string) Policy {
	if p, ok := Lookup(id); ok {
		return p
	}
	return catalog[0]
}

// Lookup returns the policy with the given id and whether it exists.
func Lookup(id string) (Policy, bool) {
	for _, p := range catalog {
		if string(p.ID) == id {
			return p, true
		}
	}
	return Policy{}, false
}

// All lists the catalog in its fixed order.
func All() []Policy {
	out := make([]Policy, len(catalog))
	copy(out[:], catalog[:])
	return out
}
