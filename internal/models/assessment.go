package models

import "time"

// Level is the three-tier label shared by risk and confidence.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

type RiskComponents struct {
	Difficulty float64 `json:"difficulty" yaml:"difficulty"`
	Interest   float64 `json:"interest" yaml:"interest"`
	Execution  float64 `json:"execution" yaml:"execution"`
	Deviation  float64 `json:"deviation" yaml:"deviation"`
}

// Sum returns the unclamped total of the weighted components.
func (c RiskComponents) Sum() float64 {
	return c.Difficulty + c.Interest + c.Execution + c.Deviation
}

type RiskAssessment struct {
	SubjectID   string         `json:"subject_id" yaml:"subject_id"`
	SubjectName string         `json:"subject_name" yaml:"subject_name"`
	RiskScore   float64        `json:"risk_score" yaml:"risk_score"`
	RiskLevel   Level          `json:"risk_level" yaml:"risk_level"`
	Components  RiskComponents `json:"components" yaml:"components"`
	Explanation string         `json:"explanation" yaml:"explanation"`
}

// RiskSnapshot is the set of risk assessments recorded by one calculation.
type RiskSnapshot struct {
	WeekID    string           `json:"week_id" yaml:"week_id"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
	Risks     []RiskAssessment `json:"risks" yaml:"risks"`
}

type ConfidenceAssessment struct {
	SubjectID       string   `json:"subject_id" yaml:"subject_id"`
	ConfidenceScore float64  `json:"confidence_score" yaml:"confidence_score"`
	ConfidenceLevel Level    `json:"confidence_level" yaml:"confidence_level"`
	Factors         []string `json:"factors" yaml:"factors"`
	Explanation     string   `json:"explanation" yaml:"explanation"`
}
