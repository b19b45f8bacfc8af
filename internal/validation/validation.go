package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/julianstephens/studypilot/internal/models"
	"github.com/julianstephens/studypilot/internal/utils"
)

// Input ranges accepted for a subject
const (
	MinCreditWeight = 1
	MaxCreditWeight = 10
	MinRating       = 1
	MaxRating       = 5
	MaxWeeklyHours  = 168
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingSubjectID     ConflictType = "missing_subject_id"
	ConflictEmptyName            ConflictType = "empty_name"
	ConflictDuplicateSubjectID   ConflictType = "duplicate_subject_id"
	ConflictDuplicateSubjectName ConflictType = "duplicate_subject_name"
	ConflictOutOfRange           ConflictType = "out_of_range"
	ConflictInvalidWeekID        ConflictType = "invalid_week_id"
	ConflictDuplicateWeek        ConflictType = "duplicate_week"
	ConflictDuplicateEntry       ConflictType = "duplicate_entry"
	ConflictUnknownSubject       ConflictType = "unknown_subject"
	ConflictInvalidStatus        ConflictType = "invalid_status"
	ConflictInvalidHours         ConflictType = "invalid_hours"
)

// Conflict represents a detected problem in subjects or execution logs
type Conflict struct {
	Type        ConflictType
	Description string
	WeekID      string   // week the conflict was found in (if applicable)
	Items       []string // subject names or ids involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err returns nil when there are no conflicts, otherwise an error listing them.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	descriptions := make([]string, len(vr.Conflicts))
	for i, c := range vr.Conflicts {
		descriptions[i] = c.Description
	}
	return fmt.Errorf("%s", strings.Join(descriptions, "; "))
}

// Validator validates subjects and execution logs
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSubject checks the fields of a single subject.
func (v *Validator) ValidateSubject(subject models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	name := subject.Name
	if name == "" {
		name = subject.ID
	}

	if strings.TrimSpace(subject.Name) == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmptyName,
			Description: fmt.Sprintf("Subject %q has an empty name", subject.ID),
			Items:       []string{subject.ID},
		})
	}
	if subject.CreditWeight < MinCreditWeight || subject.CreditWeight > MaxCreditWeight {
		result.Conflicts = append(result.Conflicts, outOfRange(name, "credit weight", fmt.Sprint(subject.CreditWeight), MinCreditWeight, MaxCreditWeight))
	}
	if subject.Difficulty < MinRating || subject.Difficulty > MaxRating {
		result.Conflicts = append(result.Conflicts, outOfRange(name, "difficulty", fmt.Sprint(subject.Difficulty), MinRating, MaxRating))
	}
	if subject.Interest < MinRating || subject.Interest > MaxRating {
		result.Conflicts = append(result.Conflicts, outOfRange(name, "interest", fmt.Sprint(subject.Interest), MinRating, MaxRating))
	}
	if !validHours(subject.AvailableStudyHours) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidHours,
			Description: fmt.Sprintf("Subject \"%s\" has invalid available hours: %v (must be between 0 and %d)", name, subject.AvailableStudyHours, MaxWeeklyHours),
			Items:       []string{name},
		})
	}
	return result
}

// ValidateSubjects checks every subject and the roster as a whole.
func (v *Validator) ValidateSubjects(subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	idCount := make(map[string]int)
	nameIDs := make(map[string][]string)
	for _, subject := range subjects {
		if subject.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingSubjectID,
				Description: fmt.Sprintf("Subject \"%s\" has no ID", subject.Name),
				Items:       []string{subject.Name},
			})
		} else {
			idCount[subject.ID]++
		}
		// Names compare case-insensitively
		if key := strings.ToLower(strings.TrimSpace(subject.Name)); key != "" {
			nameIDs[key] = append(nameIDs[key], subject.ID)
		}

		single := v.ValidateSubject(subject)
		result.Conflicts = append(result.Conflicts, single.Conflicts...)
	}

	for _, id := range sortedKeys(idCount) {
		if idCount[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSubjectID,
				Description: fmt.Sprintf("Duplicate subject ID: %s (%d subjects)", id, idCount[id]),
				Items:       []string{id},
			})
		}
	}
	for _, name := range sortedKeys(nameIDs) {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSubjectName,
				Description: fmt.Sprintf("Duplicate subject name: \"%s\" (IDs: %v)", name, ids),
				Items:       ids,
			})
		}
	}

	return result
}

// ValidateLog checks one weekly log against the known subjects.
func (v *Validator) ValidateLog(log models.WeeklyExecutionLog, subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if !utils.ValidateWeekID(log.WeekID) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidWeekID,
			Description: fmt.Sprintf("Invalid week ID: %q (expected YYYY-W<n>)", log.WeekID),
			WeekID:      log.WeekID,
		})
	}

	known := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		known[s.ID] = true
	}

	seen := make(map[string]bool)
	for _, entry := range log.Entries {
		if seen[entry.SubjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntry,
				Description: fmt.Sprintf("Week %s has more than one entry for subject %s", log.WeekID, entry.SubjectID),
				WeekID:      log.WeekID,
				Items:       []string{entry.SubjectID},
			})
		}
		seen[entry.SubjectID] = true

		if !known[entry.SubjectID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownSubject,
				Description: fmt.Sprintf("Week %s references unknown subject: %s", log.WeekID, entry.SubjectID),
				WeekID:      log.WeekID,
				Items:       []string{entry.SubjectID},
			})
		}
		if !entry.CompletionStatus.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidStatus,
				Description: fmt.Sprintf("Week %s has invalid status %q for subject %s (expected completed, partial or skipped)", log.WeekID, entry.CompletionStatus, entry.SubjectID),
				WeekID:      log.WeekID,
				Items:       []string{entry.SubjectID},
			})
		}
		if !validHours(entry.ActualHours) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHours,
				Description: fmt.Sprintf("Week %s has invalid hours for subject %s: %v", log.WeekID, entry.SubjectID, entry.ActualHours),
				WeekID:      log.WeekID,
				Items:       []string{entry.SubjectID},
			})
		}
	}

	return result
}

// ValidateLogs checks every log and flags weeks recorded more than once.
func (v *Validator) ValidateLogs(logs []models.WeeklyExecutionLog, subjects []models.Subject) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	weeks := make(map[string]int)
	for _, log := range logs {
		weeks[log.WeekID]++
		single := v.ValidateLog(log, subjects)
		result.Conflicts = append(result.Conflicts, single.Conflicts...)
	}
	for _, id := range sortedKeys(weeks) {
		if weeks[id] > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateWeek,
				Description: fmt.Sprintf("Week %s is recorded %d times", id, weeks[id]),
				WeekID:      id,
			})
		}
	}
	return result
}

// ValidateState checks the subject roster and every execution log.
func (v *Validator) ValidateState(state models.State) ValidationResult {
	result := v.ValidateSubjects(state.Subjects)
	logs := v.ValidateLogs(state.ExecutionLogs, state.Subjects)
	result.Conflicts = append(result.Conflicts, logs.Conflicts...)
	return result
}

func outOfRange(name, field, value string, lo, hi int) Conflict {
	return Conflict{
		Type:        ConflictOutOfRange,
		Description: fmt.Sprintf("Subject \"%s\" has %s %s outside %d-%d", name, field, value, lo, hi),
		Items:       []string{name},
	}
}

func validHours(h float64) bool {
	return !math.IsNaN(h) && !math.IsInf(h, 0) && h >= 0 && h <= MaxWeeklyHours
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
