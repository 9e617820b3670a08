package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
)

type fakeAdmissionRepository struct {
	upserted *models.AdmissionTemplate
	latest   *models.AdmissionTemplate
	err      error
}

func (f *fakeAdmissionRepository) UpsertAdmission(ctx context.Context, t *models.AdmissionTemplate) error {
	f.upserted = t
	return f.err
}

func (f *fakeAdmissionRepository) LatestAdmissionTemplate(ctx context.Context, batchID int64) (*models.AdmissionTemplate, error) {
	return f.latest, f.err
}

func (f *fakeAdmissionRepository) BatchAdmissionDetails(ctx context.Context, batchID int64) (*models.BatchAdmissionDetails, error) {
	return &models.BatchAdmissionDetails{BatchID: batchID}, f.err
}

func TestUpsertAdmissionEncodesWireFormat(t *testing.T) {
	repo := &fakeAdmissionRepository{}
	svc := NewAdmissionService(repo, zerolog.Nop())

	err := svc.UpsertAdmission(context.Background(), &dto.UpsertAdmissionRequest{
		BatchID:       7,
		GeneratedDate: "2024-06-01",
		Subjects:      [][]string{{"CSC101", "CSC102"}, {"MAT201"}},
		Date: []models.ExamYear{
			{Year: 2024, Months: []string{"June", "July"}},
		},
		Provider: "Examinations Office",
	})
	if err != nil {
		t.Fatalf("UpsertAdmission failed: %v", err)
	}

	if repo.upserted == nil {
		t.Fatalf("expected the repository to receive a template")
	}
	if repo.upserted.Subjects != "CSC101:CSC102,MAT201" {
		t.Fatalf("unexpected subjects encoding: %s", repo.upserted.Subjects)
	}
	if repo.upserted.ExamDates != "2024:June;July" {
		t.Fatalf("unexpected exam dates encoding: %s", repo.upserted.ExamDates)
	}
}

func TestLatestAdmissionTemplateDecodes(t *testing.T) {
	repo := &fakeAdmissionRepository{latest: &models.AdmissionTemplate{
		AdmissionID:   3,
		BatchID:       7,
		GeneratedDate: "2024-06-01",
		Subjects:      "CSC101:CSC102,MAT201",
		ExamDates:     "2024:June;July,2025:January",
		Provider:      "Examinations Office",
		Data:          `{"batch_id":7}`,
	}}
	svc := NewAdmissionService(repo, zerolog.Nop())

	resp, err := svc.LatestAdmissionTemplate(context.Background(), 7)
	if err != nil {
		t.Fatalf("LatestAdmissionTemplate failed: %v", err)
	}
	if len(resp.Subjects) != 2 || resp.Subjects[0][1] != "CSC102" {
		t.Fatalf("unexpected subjects: %v", resp.Subjects)
	}
	if len(resp.Date) != 2 || resp.Date[1].Year != 2025 {
		t.Fatalf("unexpected dates: %v", resp.Date)
	}
	if resp.Data == nil {
		t.Fatalf("expected the JSON data document to be decoded")
	}
}

func TestLatestAdmissionTemplateCorruptDates(t *testing.T) {
	repo := &fakeAdmissionRepository{latest: &models.AdmissionTemplate{
		ExamDates: "June;July",
	}}
	svc := NewAdmissionService(repo, zerolog.Nop())

	if _, err := svc.LatestAdmissionTemplate(context.Background(), 7); err == nil {
		t.Fatalf("expected a corrupt template to error")
	}
}

func TestLatestAdmissionTemplateNotFound(t *testing.T) {
	repo := &fakeAdmissionRepository{err: apperrors.NewResourceNotFoundError("no admission template found")}
	svc := NewAdmissionService(repo, zerolog.Nop())

	_, err := svc.LatestAdmissionTemplate(context.Background(), 7)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}
