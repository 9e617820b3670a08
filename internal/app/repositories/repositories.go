// Package repositories is the data-access layer. Domain rules (eligibility,
// duplicate-application detection, index allocation) live in database stored
// procedures; this layer invokes them through documented call signatures and
// translates their errors, it does not reimplement them.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tharindu/examdesk/internal/app/models"
)

// IUserRepository handles account rows and the registration transaction
type IUserRepository interface {
	RegisterStudent(ctx context.Context, reg *models.StudentRegistration, passwordHash string) (int64, error)
	RegisterManager(ctx context.Context, reg *models.ManagerRegistration, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, userName string) (*models.User, error)
}

// IEntryRepository invokes the exam-entry stored procedures
type IEntryRepository interface {
	ApplyExam(ctx context.Context, userID int64) error
	AddMedicalResitStudent(ctx context.Context, batchID int64, subID string, sID int64, examType string) error
	GetStudentSubjects(ctx context.Context, batchID, sID int64) ([]models.StudentSubject, error)
	StudentsWithoutIndexNumber(ctx context.Context, batchID int64) ([]string, error)
	GenerateIndexNumbers(ctx context.Context, batchID int64, course, batch string, startsFrom int) ([]models.IndexedStudent, error)
	LastAssignedIndexNumber(ctx context.Context, course, batch string) (string, error)
	FetchStudentsWithSubjects(ctx context.Context, batchID int64) ([]models.StudentSubjectRow, error)
	StudentDetailsWithSubjects(ctx context.Context, batchID, userID int64) ([]models.StudentSubjectRow, error)
}

// IAdmissionRepository invokes the admission-template stored procedures
type IAdmissionRepository interface {
	UpsertAdmission(ctx context.Context, t *models.AdmissionTemplate) error
	LatestAdmissionTemplate(ctx context.Context, batchID int64) (*models.AdmissionTemplate, error)
	BatchAdmissionDetails(ctx context.Context, batchID int64) (*models.BatchAdmissionDetails, error)
}

// Repositories contains all repository implementations
type Repositories struct {
	UserRepository      IUserRepository
	EntryRepository     IEntryRepository
	AdmissionRepository IAdmissionRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		EntryRepository:     NewEntryRepository(db),
		AdmissionRepository: NewAdmissionRepository(db),
	}
}
