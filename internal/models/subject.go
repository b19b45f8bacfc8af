package models

// Subject is an academic subject competing for weekly study time.
type Subject struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	CreditWeight        int     `json:"credit_weight" yaml:"credit_weight"` // 1-10
	Difficulty          int     `json:"difficulty" yaml:"difficulty"`       // 1-5
	Interest            int     `json:"interest" yaml:"interest"`           // 1-5
	AvailableStudyHours float64 `json:"available_study_hours" yaml:"available_study_hours"`
}

// TotalAvailableHours sums the weekly capacity of every subject.
func TotalAvailableHours(subjects []Subject) float64 {
	total := 0.0
	for _, s := range subjects {
		total += s.AvailableStudyHours
	}
	return total
}

// CloneSubjects returns an independent copy of the slice.
func CloneSubjects(subjects []Subject) []Subject {
	if subjects == nil {
		return nil
	}
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}
