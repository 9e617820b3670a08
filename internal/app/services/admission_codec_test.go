package services

import (
	"testing"

	"github.com/tharindu/examdesk/internal/app/models"
)

func TestEncodeDecodeSubjects(t *testing.T) {
	groups := [][]string{
		{"CSC101", "CSC102"},
		{"MAT201"},
		{"PHY301", "PHY302", "PHY303"},
	}

	encoded := encodeSubjects(groups)
	if encoded != "CSC101:CSC102,MAT201,PHY301:PHY302:PHY303" {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	decoded := decodeSubjects(encoded)
	if len(decoded) != len(groups) {
		t.Fatalf("expected %d groups, got %d", len(groups), len(decoded))
	}
	for i, group := range groups {
		if len(decoded[i]) != len(group) {
			t.Fatalf("group %d: expected %d subjects, got %d", i, len(group), len(decoded[i]))
		}
		for j, subID := range group {
			if decoded[i][j] != subID {
				t.Fatalf("group %d subject %d: expected %s, got %s", i, j, subID, decoded[i][j])
			}
		}
	}
}

func TestDecodeSubjectsEmpty(t *testing.T) {
	decoded := decodeSubjects("")
	if decoded == nil || len(decoded) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", decoded)
	}
}

func TestEncodeDecodeExamDates(t *testing.T) {
	years := []models.ExamYear{
		{Year: 2024, Months: []string{"January", "February"}},
		{Year: 2025, Months: []string{"March"}},
	}

	encoded := encodeExamDates(years)
	if encoded != "2024:January;February,2025:March" {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	decoded, err := decodeExamDates(encoded)
	if err != nil {
		t.Fatalf("decodeExamDates failed: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 years, got %d", len(decoded))
	}
	if decoded[0].Year != 2024 || len(decoded[0].Months) != 2 {
		t.Fatalf("unexpected first year: %+v", decoded[0])
	}
	if decoded[1].Year != 2025 || decoded[1].Months[0] != "March" {
		t.Fatalf("unexpected second year: %+v", decoded[1])
	}
}

func TestDecodeExamDatesMalformed(t *testing.T) {
	for _, encoded := range []string{"January;February", "twentytwenty:March"} {
		if _, err := decodeExamDates(encoded); err == nil {
			t.Fatalf("expected %q to fail decoding", encoded)
		}
	}
}
