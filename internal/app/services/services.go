// Package services contains the application logic between controllers and
// repositories: request validation, procedure invocation and result
// reshaping.
package services

import (
	"context"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
)

// AuthService handles registration and login
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (int64, error)
	RegisterManager(ctx context.Context, req *dto.RegisterManagerRequest) (int64, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// EntryService handles exam applications and index-number allocation
type EntryService interface {
	ApplyExam(ctx context.Context, userID int64) error
	AddMedicalResitStudents(ctx context.Context, batchID int64, data map[string][]models.MedicalResitStudent) error
	GetStudentSubjects(ctx context.Context, batchID, sID int64) ([]models.StudentSubject, error)
	StudentsWithoutIndexNumber(ctx context.Context, batchID int64) (*dto.MissingIndexNumbersResponse, error)
	GenerateIndexNumbers(ctx context.Context, req *dto.GenerateIndexNumbersRequest) ([]models.IndexedStudent, error)
	LastAssignedIndexNumber(ctx context.Context, course, batch string) (int, error)
	FetchStudentsWithSubjects(ctx context.Context, batchID int64) (*dto.GroupedStudentsResponse, error)
	StudentWithSubjectsByUserID(ctx context.Context, batchID, userID int64) (*models.StudentWithSubjects, error)
}

// AdmissionService handles admission-template management
type AdmissionService interface {
	UpsertAdmission(ctx context.Context, req *dto.UpsertAdmissionRequest) error
	LatestAdmissionTemplate(ctx context.Context, batchID int64) (*dto.AdmissionTemplateResponse, error)
	BatchAdmissionDetails(ctx context.Context, batchID int64) (*models.BatchAdmissionDetails, error)
}
