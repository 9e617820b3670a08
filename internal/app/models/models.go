// Package models contains the domain structures shared across layers.
package models

import "fmt"

// Role identifiers. Role determines which detail table backs a user and
// which routes the session may reach.
const (
	RoleManager = 4
	RoleStudent = 5
)

// ExamType categorises a student-subject pairing.
type ExamType string

const (
	// ExamTypeProper is a normal first-attempt sitting.
	ExamTypeProper ExamType = "P"
	// ExamTypeMedical is a sitting granted on medical grounds.
	ExamTypeMedical ExamType = "M"
	// ExamTypeResit is a repeat sitting.
	ExamTypeResit ExamType = "R"
)

// ParseExamType maps a raw exam-type value onto the known categories.
// Values outside P/M/R are an error rather than a silent drop.
func ParseExamType(raw string) (ExamType, error) {
	switch ExamType(raw) {
	case ExamTypeProper, ExamTypeMedical, ExamTypeResit:
		return ExamType(raw), nil
	default:
		return "", fmt.Errorf("unknown exam type %q", raw)
	}
}
