package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tharindu/examdesk/internal/app/models"
)

// The admission template stores its subject groups and exam dates as
// delimited strings; these helpers are the only place that encoding lives,
// so writes and reads always round-trip through the same decomposition.
//
// Subjects: comma-separated groups of colon-joined subject codes,
// e.g. "CSC101:CSC102,MAT201". Dates: comma-separated "year:month;month"
// groups, e.g. "2024:January;February,2025:March".

func encodeSubjects(groups [][]string) string {
	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		parts = append(parts, strings.Join(group, ":"))
	}
	return strings.Join(parts, ",")
}

func decodeSubjects(encoded string) [][]string {
	if encoded == "" {
		return [][]string{}
	}

	parts := strings.Split(encoded, ",")
	groups := make([][]string, 0, len(parts))
	for _, part := range parts {
		groups = append(groups, strings.Split(part, ":"))
	}
	return groups
}

func encodeExamDates(years []models.ExamYear) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, fmt.Sprintf("%d:%s", y.Year, strings.Join(y.Months, ";")))
	}
	return strings.Join(parts, ",")
}

func decodeExamDates(encoded string) ([]models.ExamYear, error) {
	if encoded == "" {
		return []models.ExamYear{}, nil
	}

	parts := strings.Split(encoded, ",")
	years := make([]models.ExamYear, 0, len(parts))
	for _, part := range parts {
		yearStr, monthsStr, found := strings.Cut(part, ":")
		if !found {
			return nil, fmt.Errorf("malformed exam date group %q", part)
		}

		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("malformed exam year %q: %w", yearStr, err)
		}

		years = append(years, models.ExamYear{
			Year:   year,
			Months: strings.Split(monthsStr, ";"),
		})
	}

	return years, nil
}
