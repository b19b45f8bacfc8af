package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/studypilot/internal/confidence"
	"github.com/julianstephens/studypilot/internal/engine"
	"github.com/julianstephens/studypilot/internal/insights"
	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/policy"
	"github.com/julianstephens/studypilot/internal/risk"
	"github.com/julianstephens/studypilot/internal/trends"
)

const notCalculated = "Nothing calculated yet. Press 'c' to calculate."

func (m Model) policyName() string {
	return policy.Get(m.state.PolicyID).Name
}

func levelText(level models.Level, invert bool) string {
	text := strings.ToUpper(string(level))
	bad := level == models.LevelHigh
	if invert {
		bad = level == models.LevelLow
	}
	switch {
	case bad:
		return dangerStyle.Render(text)
	case level == models.LevelMedium:
		return warningStyle.Render(text)
	default:
		return successStyle.Render(text)
	}
}

func renderRisk(state models.State) string {
	if len(state.RiskAssessments) == 0 {
		return notCalculated
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Risk, highest first") + "\n\n")
	for _, r := range risk.RankByRisk(state.RiskAssessments) {
		fmt.Fprintf(&b, "%-24s %5.2f  %s\n", r.SubjectName, r.RiskScore, levelText(r.RiskLevel, false))
		if r.Explanation != "" {
			b.WriteString(mutedStyle.Render("  "+r.Explanation) + "\n")
		}
	}
	return b.String()
}

func renderConfidence(state models.State) string {
	if len(state.ConfidenceData) == 0 {
		return notCalculated
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render("Confidence in each recommendation") + "\n\n")
	index := models.ConfidenceIndex(state.ConfidenceData)
	for _, p := range state.WeeklyPlans {
		c, ok := index[p.SubjectID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-24s %5.2f  %s\n", p.SubjectName, c.ConfidenceScore, levelText(c.ConfidenceLevel, true))
		if d := confidence.Disclaimer(c.ConfidenceLevel); d != "" {
			b.WriteString(warningStyle.Render("  "+d) + "\n")
		}
	}
	return b.String()
}

func renderInsights(state models.State, analysis engine.Analysis) string {
	if len(state.ExecutionLogs) == 0 {
		return "No weeks recorded yet. Use 'studypilot log record' after a week of study."
	}
	report := analysis.Insights
	var b strings.Builder
	for _, tier := range insights.Tiers {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(headingStyle.Render(strings.ToUpper(string(tier))) + "\n")
		items := report.ForTier(tier)
		switch {
		case !report.Available(tier):
			b.WriteString(mutedStyle.Render(fmt.Sprintf("Needs %d weeks of data (have %d).", insights.MinWeeks(tier), report.Weeks)) + "\n")
		case len(items) == 0:
			b.WriteString(mutedStyle.Render("Nothing notable.") + "\n")
		}
		for _, in := range items {
			fmt.Fprintf(&b, "• %s: %s\n", in.SubjectName, in.Message)
			if in.Recommendation != "" {
				b.WriteString(mutedStyle.Render("  → "+in.Recommendation) + "\n")
			}
		}
	}
	return b.String()
}

func renderTrends(state models.State, analysis engine.Analysis) string {
	t := analysis.Trends
	var b strings.Builder
	section := func(title string, label trends.Label, message string) {
		b.WriteString(headingStyle.Render(title) + "\n")
		if label != "" {
			fmt.Fprintf(&b, "[%s] ", label)
		}
		b.WriteString(message + "\n\n")
	}
	section("Planning accuracy", t.Accuracy.Trend, t.Accuracy.Message)
	section("Priority volatility", t.Volatility.Volatility, t.Volatility.Message)
	section("Burnout", t.Burnout.BurnoutRisk, t.Burnout.Message)
	section("Risk", t.Risk.Trend, t.Risk.Message)
	for _, r := range t.Risk.Subjects {
		name := r.SubjectID
		if s, ok := state.FindSubject(r.SubjectID); ok {
			name = s.Name
		}
		fmt.Fprintf(&b, "  %-22s %s\n", name, r.Trend)
	}
	return b.String()
}
