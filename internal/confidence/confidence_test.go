package confidence

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/julianstephens/studypilot/internal/history"
	"github.com/julianstephens/studypilot/internal/models"
)

var subject = models.Subject{ID: "s1", Name: "Calculus", CreditWeight: 8, Difficulty: 3, Interest: 5, AvailableStudyHours: 10}

func TestCalculateNoHistory(t *testing.T) {
	got := Calculate(subject, nil, nil)

	if math.Abs(got.ConfidenceScore-0.15) > 1e-9 {
		t.Errorf("score = %v, want 0.15", got.ConfidenceScore)
	}
	if got.ConfidenceLevel != models.LevelLow {
		t.Errorf("level = %q, want low", got.ConfidenceLevel)
	}
	for _, f := range []string{FactorNoData, FactorInitial} {
		if !slices.Contains(got.Factors, f) {
			t.Errorf("factors %v missing %q", got.Factors, f)
		}
	}
	if got.SubjectID != "s1" {
		t.Errorf("subject id = %q", got.SubjectID)
	}
	want := "Confidence: LOW (score: 0.15). Based on: no historical data, initial assessment. Recommendations should be treated as preliminary."
	if got.Explanation != want {
		t.Errorf("explanation = %q, want %q", got.Explanation, want)
	}
}

func TestCalculateLevels(t *testing.T) {
	tests := []struct {
		name      string
		exec      *history.Summary
		scores    []float64
		wantScore float64
		wantLevel models.Level
		wantHas   []string
	}{
		{
			name:      "limited data single point",
			exec:      &history.Summary{DataPoints: 1, Deviations: []float64{-1}},
			wantScore: 0.35,
			wantLevel: models.LevelLow,
			wantHas:   []string{FactorLimitedData, FactorInitial},
		},
		{
			name:      "limited data stable execution",
			exec:      &history.Summary{DataPoints: 2, Deviations: []float64{-1, 1}},
			wantScore: 0.65,
			wantLevel: models.LevelMedium,
			wantHas:   []string{FactorLimitedData, FactorStableExecution, FactorInitial},
		},
		{
			name:      "sufficient data stable everything",
			exec:      &history.Summary{DataPoints: 3, Deviations: []float64{2, -2, 2}},
			scores:    []float64{4.1, 4.1, 4.1},
			wantScore: 1.0,
			wantLevel: models.LevelHigh,
			wantHas:   []string{FactorSufficientData, FactorStableExecution, FactorStableInput},
		},
		{
			name:      "high variability",
			exec:      &history.Summary{DataPoints: 3, Deviations: []float64{0.1, 5, 0.1}},
			scores:    []float64{1, 4},
			wantScore: 0.4,
			wantLevel: models.LevelMedium,
			wantHas:   []string{FactorSufficientData, FactorHighExecution, FactorHighInput},
		},
		{
			name:      "moderate input",
			scores:    []float64{3, 4},
			wantScore: 0.15,
			wantLevel: models.LevelLow,
			wantHas:   []string{FactorNoData, FactorModerateInput},
		},
		{
			name:      "zero mean deviations count as stable",
			exec:      &history.Summary{DataPoints: 2, Deviations: []float64{0, 0}},
			wantScore: 0.65,
			wantLevel: models.LevelMedium,
			wantHas:   []string{FactorStableExecution},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(subject, tt.exec, tt.scores)
			if math.Abs(got.ConfidenceScore-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v (factors %v)", got.ConfidenceScore, tt.wantScore, got.Factors)
			}
			if got.ConfidenceLevel != tt.wantLevel {
				t.Errorf("level = %q, want %q", got.ConfidenceLevel, tt.wantLevel)
			}
			for _, f := range tt.wantHas {
				if !slices.Contains(got.Factors, f) {
					t.Errorf("factors %v missing %q", got.Factors, f)
				}
			}
			if got.ConfidenceScore < 0 || got.ConfidenceScore > 1 {
				t.Errorf("score %v outside [0,1]", got.ConfidenceScore)
			}
		})
	}
}

func TestExplanationAdvice(t *testing.T) {
	high := Calculate(subject, &history.Summary{DataPoints: 3, Deviations: []float64{1, 1, 1}}, []float64{2, 2})
	if !strings.HasSuffix(high.Explanation, "Recommendations are highly reliable.") {
		t.Errorf("high explanation = %q", high.Explanation)
	}
	if !strings.HasPrefix(high.Explanation, "Confidence: HIGH (score: 1.00).") {
		t.Errorf("high explanation = %q", high.Explanation)
	}
}

func TestDisclaimer(t *testing.T) {
	tests := []struct {
		level models.Level
		want  string
	}{
		{models.LevelLow, "⚠️ Low confidence recommendation. Use with caution."},
		{models.LevelMedium, "ℹ️ Medium confidence recommendation. Monitor and adjust as needed."},
		{models.LevelHigh, ""},
	}
	for _, tt := range tests {
		if got := Disclaimer(tt.level); got != tt.want {
			t.Errorf("Disclaimer(%q) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
