package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/db"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
	"github.com/tharindu/examdesk/internal/pkg/dberrors"
)

// EntryRepository invokes the exam-entry stored procedures. Each call checks
// out one pooled connection for the duration of the request and releases it
// on every exit path.
//
// Procedure contract: a procedure rejecting a request for a domain reason
// raises SQLSTATE P0001 with a caller-facing message; any other failure is
// an internal error.
type EntryRepository struct {
	db *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		db: db,
	}
}

// ApplyExam runs the exam-application procedure for one user. Eligibility
// and duplicate-application checks happen inside the procedure.
func (r *EntryRepository) ApplyExam(ctx context.Context, userID int64) error {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT apply_exam($1)`, userID); err != nil {
		return translateProcError(err, "error during exam application")
	}
	return nil
}

// AddMedicalResitStudent registers one (subject, student) pair. Each call
// commits independently; callers looping over pairs get no enclosing
// transaction.
func (r *EntryRepository) AddMedicalResitStudent(ctx context.Context, batchID int64, subID string, sID int64, examType string) error {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT add_medical_resit_student($1, $2, $3, $4)`, batchID, subID, sID, examType); err != nil {
		return translateProcError(err, "error adding medical/resit student")
	}
	return nil
}

// GetStudentSubjects returns the subject list for one student in one batch
func (r *EntryRepository) GetStudentSubjects(ctx context.Context, batchID, sID int64) ([]models.StudentSubject, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT sub_id, sub_name, eligibility, exam_type FROM get_student_subjects($1, $2)`, batchID, sID)
	if err != nil {
		return nil, translateProcError(err, "error fetching student subjects")
	}
	defer rows.Close()

	var subjects []models.StudentSubject
	for rows.Next() {
		var s models.StudentSubject
		if err := rows.Scan(&s.SubID, &s.SubName, &s.Eligibility, &s.ExamType); err != nil {
			return nil, fmt.Errorf("error scanning student subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateProcError(err, "error fetching student subjects")
	}

	return subjects, nil
}

// StudentsWithoutIndexNumber lists usernames of students still lacking an
// index number in the batch.
func (r *EntryRepository) StudentsWithoutIndexNumber(ctx context.Context, batchID int64) ([]string, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT user_name FROM students_without_index_number($1)`, batchID)
	if err != nil {
		return nil, translateProcError(err, "error fetching students without index number")
	}
	defer rows.Close()

	var userNames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning user name: %w", err)
		}
		userNames = append(userNames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, translateProcError(err, "error fetching students without index number")
	}

	return userNames, nil
}

// GenerateIndexNumbers allocates one index number per un-indexed eligible
// student, continuing the (course, batch) sequence from startsFrom, and
// returns the updated students. Sequence continuation is server-side and
// assumes a single writer.
func (r *EntryRepository) GenerateIndexNumbers(ctx context.Context, batchID int64, course, batch string, startsFrom int) ([]models.IndexedStudent, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT s_id, name, user_name, index_num FROM generate_index_numbers($1, $2, $3, $4)`, batchID, course, batch, startsFrom)
	if err != nil {
		return nil, translateProcError(err, "error generating index numbers")
	}
	defer rows.Close()

	var students []models.IndexedStudent
	for rows.Next() {
		var s models.IndexedStudent
		if err := rows.Scan(&s.SID, &s.Name, &s.UserName, &s.IndexNum); err != nil {
			return nil, fmt.Errorf("error scanning indexed student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateProcError(err, "error generating index numbers")
	}

	return students, nil
}

// LastAssignedIndexNumber returns the highest index number issued for the
// (course, batch) sequence, or "" when none has been issued.
func (r *EntryRepository) LastAssignedIndexNumber(ctx context.Context, course, batch string) (string, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	var lastIndex *string
	err = conn.QueryRow(ctx, `SELECT last_assigned_index_number($1, $2)`, course, batch).Scan(&lastIndex)
	if err != nil {
		return "", translateProcError(err, "error fetching last assigned index number")
	}
	if lastIndex == nil {
		return "", nil
	}

	return *lastIndex, nil
}

// FetchStudentsWithSubjects returns the flat (student, subject) row set for
// a batch, one row per enrollment.
func (r *EntryRepository) FetchStudentsWithSubjects(ctx context.Context, batchID int64) ([]models.StudentSubjectRow, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT s_id, name, index_num, user_name, exam_type, sub_id, eligibility FROM fetch_students_with_subjects($1)`, batchID)
	if err != nil {
		return nil, translateProcError(err, "error fetching students with subjects")
	}
	defer rows.Close()

	var result []models.StudentSubjectRow
	for rows.Next() {
		var row models.StudentSubjectRow
		if err := rows.Scan(&row.SID, &row.Name, &row.IndexNum, &row.UserName, &row.ExamType, &row.SubID, &row.Eligibility); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateProcError(err, "error fetching students with subjects")
	}

	return result, nil
}

// StudentDetailsWithSubjects returns the enrollment rows for one
// authenticated student in a batch.
func (r *EntryRepository) StudentDetailsWithSubjects(ctx context.Context, batchID, userID int64) ([]models.StudentSubjectRow, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT s_id, name, index_num, user_name, sub_id, eligibility FROM student_details_with_subjects($1, $2)`, batchID, userID)
	if err != nil {
		return nil, translateProcError(err, "error fetching student details with subjects")
	}
	defer rows.Close()

	var result []models.StudentSubjectRow
	for rows.Next() {
		var row models.StudentSubjectRow
		if err := rows.Scan(&row.SID, &row.Name, &row.IndexNum, &row.UserName, &row.SubID, &row.Eligibility); err != nil {
			return nil, fmt.Errorf("error scanning student detail row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateProcError(err, "error fetching student details with subjects")
	}

	if len(result) == 0 {
		return nil, apperrors.NewResourceNotFoundError("no entry found for student in batch")
	}

	return result, nil
}

// translateProcError surfaces a procedure's domain rejection with its own
// message and hides everything else behind a generic wrap.
func translateProcError(err error, msg string) error {
	if m, ok := dberrors.BusinessRuleMessage(err); ok {
		return apperrors.NewBusinessRuleError(m)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
