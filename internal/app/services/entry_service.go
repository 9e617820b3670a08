package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/app/repositories"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
)

// Index numbers carry a fixed 2-character course/batch prefix ahead of the
// zero-padded sequence.
const indexNumberPrefixLen = 2

// entryService implements EntryService
type entryService struct {
	entryRepo repositories.IEntryRepository
	logger    zerolog.Logger
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo repositories.IEntryRepository, logger zerolog.Logger) EntryService {
	return &entryService{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// ApplyExam submits one student's exam application
func (s *entryService) ApplyExam(ctx context.Context, userID int64) error {
	return s.entryRepo.ApplyExam(ctx, userID)
}

// AddMedicalResitStudents registers every (subject, student) pair one
// procedure call at a time. There is no enclosing transaction: a failure
// abandons the remainder of the loop while earlier calls stay committed.
// Subjects are processed in sorted order so partial completion is
// reproducible.
func (s *entryService) AddMedicalResitStudents(ctx context.Context, batchID int64, data map[string][]models.MedicalResitStudent) error {
	subIDs := make([]string, 0, len(data))
	for subID := range data {
		subIDs = append(subIDs, subID)
	}
	sort.Strings(subIDs)

	for _, subID := range subIDs {
		for _, student := range data[subID] {
			if err := s.entryRepo.AddMedicalResitStudent(ctx, batchID, subID, student.SID, student.Type); err != nil {
				s.logger.Error().Err(err).
					Str("subID", subID).
					Int64("sID", student.SID).
					Msg("Medical/resit registration aborted mid-batch")
				return err
			}
		}
	}

	return nil
}

// GetStudentSubjects returns the subject list for one student in one batch
func (s *entryService) GetStudentSubjects(ctx context.Context, batchID, sID int64) ([]models.StudentSubject, error) {
	return s.entryRepo.GetStudentSubjects(ctx, batchID, sID)
}

// StudentsWithoutIndexNumber reports how many students still lack an index
// number and who they are.
func (s *entryService) StudentsWithoutIndexNumber(ctx context.Context, batchID int64) (*dto.MissingIndexNumbersResponse, error) {
	userNames, err := s.entryRepo.StudentsWithoutIndexNumber(ctx, batchID)
	if err != nil {
		return nil, err
	}

	return &dto.MissingIndexNumbersResponse{
		Count:     len(userNames),
		UserNames: userNames,
	}, nil
}

// GenerateIndexNumbers parses the starting sequence value and runs the
// allocation procedure.
func (s *entryService) GenerateIndexNumbers(ctx context.Context, req *dto.GenerateIndexNumbersRequest) ([]models.IndexedStudent, error) {
	startsFrom, err := strconv.Atoi(req.StartsFrom)
	if err != nil {
		return nil, apperrors.NewValidationError("startsFrom must be an integer")
	}

	return s.entryRepo.GenerateIndexNumbers(ctx, req.BatchID, req.Course, req.Batch, startsFrom)
}

// LastAssignedIndexNumber returns the numeric suffix of the highest index
// number issued for the (course, batch) sequence, or 0 if none exists.
func (s *entryService) LastAssignedIndexNumber(ctx context.Context, course, batch string) (int, error) {
	lastIndex, err := s.entryRepo.LastAssignedIndexNumber(ctx, course, batch)
	if err != nil {
		return 0, err
	}

	if len(lastIndex) <= indexNumberPrefixLen {
		return 0, nil
	}

	suffix, err := strconv.Atoi(lastIndex[indexNumberPrefixLen:])
	if err != nil {
		return 0, fmt.Errorf("malformed index number %q: %w", lastIndex, err)
	}

	return suffix, nil
}

// FetchStudentsWithSubjects groups the flat row set by exam type,
// deduplicates students within a group while accumulating their subjects,
// and sorts each group lexicographically by index number. A row with an
// exam type outside P/M/R is an error, not a silent drop.
func (s *entryService) FetchStudentsWithSubjects(ctx context.Context, batchID int64) (*dto.GroupedStudentsResponse, error) {
	rows, err := s.entryRepo.FetchStudentsWithSubjects(ctx, batchID)
	if err != nil {
		return nil, err
	}

	groups := map[models.ExamType][]models.StudentWithSubjects{
		models.ExamTypeProper:  {},
		models.ExamTypeMedical: {},
		models.ExamTypeResit:   {},
	}
	seen := map[models.ExamType]map[int64]int{
		models.ExamTypeProper:  {},
		models.ExamTypeMedical: {},
		models.ExamTypeResit:   {},
	}

	for _, row := range rows {
		examType, err := models.ParseExamType(row.ExamType)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrUnknownExamType,
				fmt.Sprintf("student %d carries unknown exam type %q", row.SID, row.ExamType))
		}

		idx, ok := seen[examType][row.SID]
		if !ok {
			groups[examType] = append(groups[examType], models.StudentWithSubjects{
				SID:      row.SID,
				Name:     row.Name,
				IndexNum: row.IndexNum,
				UserName: row.UserName,
			})
			idx = len(groups[examType]) - 1
			seen[examType][row.SID] = idx
		}

		groups[examType][idx].Subjects = append(groups[examType][idx].Subjects, models.SubjectEntry{
			SubID:       row.SubID,
			Eligibility: row.Eligibility,
		})
	}

	// Lexicographic on purpose: the printed sheets rely on this exact
	// ordering of index numbers.
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].IndexNum < group[j].IndexNum
		})
	}

	return &dto.GroupedStudentsResponse{
		Proper:  groups[models.ExamTypeProper],
		Medical: groups[models.ExamTypeMedical],
		Resit:   groups[models.ExamTypeResit],
	}, nil
}

// StudentWithSubjectsByUserID returns one authenticated student's details
// with their accumulated subjects.
func (s *entryService) StudentWithSubjectsByUserID(ctx context.Context, batchID, userID int64) (*models.StudentWithSubjects, error) {
	rows, err := s.entryRepo.StudentDetailsWithSubjects(ctx, batchID, userID)
	if err != nil {
		return nil, err
	}

	student := &models.StudentWithSubjects{
		SID:      rows[0].SID,
		Name:     rows[0].Name,
		IndexNum: rows[0].IndexNum,
		UserName: rows[0].UserName,
	}
	for _, row := range rows {
		student.Subjects = append(student.Subjects, models.SubjectEntry{
			SubID:       row.SubID,
			Eligibility: row.Eligibility,
		})
	}

	return student, nil
}
