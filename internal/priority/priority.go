// Package priority scores subjects under a decision policy and ranks them.
package priority

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/logger"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/policy"
	"github.com/julianstephens/studypilot/internal/stats"
)

// Score thresholds for the explanation tier label.
const (
	HighThreshold   = 3.5
	MediumThreshold = 2.5
)

// maxWorkers bounds concurrent subject scoring.
const maxWorkers = 8

// Scored is the numeric outcome of scoring one subject.
type Scored struct {
	Score         float64
	Components    models.ScoreComponents
	ExecutionRate float64
	// UsedExecution is set when execution history fed the score.
	UsedExecution bool
}

// Score computes a subject's priority under pol. exec may be nil; it is only
// consulted when the policy weights execution.
func Score(subject models.Subject, pol policy.Policy, exec *history.Summary) Scored {
	normalizedCredits := float64(subject.CreditWeight) / 10 * 5
	normalizedDifficulty := float64(6 - subject.Difficulty)

	var out Scored
	executionComponent := 0.0
	if pol.UsesExecution() && exec != nil {
		// Over-execution is capped at a rate of 1.
		out.ExecutionRate = math.Min(exec.ExecutionRate(), 1.0)
		out.UsedExecution = true
		executionComponent = out.ExecutionRate * 5
	}

	w := pol.Weights
	out.Components = models.ScoreComponents{
		Interest:   float64(subject.Interest) * w.Interest,
		Credits:    normalizedCredits * w.Credits,
		Difficulty: normalizedDifficulty * w.Difficulty,
		Execution:  executionComponent * w.Execution,
	}
	out.Score = out.Components.Sum()
	return out
}

// Explain renders the human-readable account of a score.
func Explain(subject models.Subject, pol policy.Policy, s Scored) string {
	var details []string
	c := s.Components
	if c.Interest > 0 {
		details = append(details, fmt.Sprintf("interest (%d/5) contributed %.2f", subject.Interest, c.Interest))
	}
	if c.Credits > 0 {
		details = append(details, fmt.Sprintf("credit weight (%d) contributed %.2f", subject.CreditWeight, c.Credits))
	}
	if c.Difficulty > 0 {
		details = append(details, fmt.Sprintf("difficulty factor (%d) contributed %.2f", 6-subject.Difficulty, c.Difficulty))
	}
	if c.Execution > 0 && s.UsedExecution {
		details = append(details, fmt.Sprintf("execution history contributed %.2f (Historical execution rate: %.0f%%)", c.Execution, s.ExecutionRate*100))
	}

	criteria := strings.ToLower(pol.Name)
	var verdict string
	switch {
	case s.Score >= HighThreshold:
		verdict = fmt.Sprintf("High priority (score: %.2f) due to strong alignment with %s criteria.", s.Score, criteria)
	case s.Score >= MediumThreshold:
		verdict = fmt.Sprintf("Medium priority (score: %.2f) with moderate alignment to %s criteria.", s.Score, criteria)
	default:
		verdict = fmt.Sprintf("Lower priority (score: %.2f) as it does not strongly align with %s criteria.", s.Score, criteria)
	}

	return fmt.Sprintf("Under %s: Score components: %s. %s", pol.Name, strings.Join(details, ", "), verdict)
}

// Calculate scores every subject and returns the ranked result set. Subjects
// are scored concurrently, but ranks are assigned only once every score is
// in, so callers never see a partially ranked slice. Ties keep the input
// order.
func Calculate(ctx context.Context, subjects []models.Subject, pol policy.Policy, execHistory map[string]history.Summary) ([]models.PriorityResult, error) {
	results := make([]models.PriorityResult, len(subjects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, subject := range subjects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var exec *history.Summary
			if pol.UsesExecution() {
				exec = history.Lookup(execHistory, subject.ID)
			}
			scored := Score(subject, pol, exec)
			results[i] = models.PriorityResult{
				SubjectID:     subject.ID,
				SubjectName:   subject.Name,
				PriorityScore: scored.Score,
				Components:    scored.Components,
				Explanation:   Explain(subject, pol, scored),
				PolicyID:      string(pol.ID),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score subjects: %w", err)
	}

	Rank(results)
	logger.Debug("Calculated priorities", "policy", pol.ID, "subjects", len(results))
	return results, nil
}

// Rank stable-sorts results by descending score and assigns ranks 1..N.
func Rank(results []models.PriorityResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PriorityScore > results[j].PriorityScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

// TotalScore sums the priority scores.
func TotalScore(results []models.PriorityResult) float64 {
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.PriorityScore
	}
	return stats.Sum(scores)
}
