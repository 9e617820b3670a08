package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/app/models/dto"
	"github.com/tharindu/examdesk/internal/app/repositories"
)

// admissionService implements AdmissionService
type admissionService struct {
	admissionRepo repositories.IAdmissionRepository
	logger        zerolog.Logger
}

// NewAdmissionService creates a new AdmissionService
func NewAdmissionService(admissionRepo repositories.IAdmissionRepository, logger zerolog.Logger) AdmissionService {
	return &admissionService{
		admissionRepo: admissionRepo,
		logger:        logger,
	}
}

// UpsertAdmission flattens the structured subjects and dates into the
// template's wire encoding and upserts the row for the batch.
func (s *admissionService) UpsertAdmission(ctx context.Context, req *dto.UpsertAdmissionRequest) error {
	template := &models.AdmissionTemplate{
		BatchID:       req.BatchID,
		GeneratedDate: req.GeneratedDate,
		Subjects:      encodeSubjects(req.Subjects),
		ExamDates:     encodeExamDates(req.Date),
		Description:   req.Description,
		Instructions:  req.Instructions,
		Provider:      req.Provider,
	}

	return s.admissionRepo.UpsertAdmission(ctx, template)
}

// LatestAdmissionTemplate returns the most recent template for a batch with
// its encodings decoded back into structured arrays.
func (s *admissionService) LatestAdmissionTemplate(ctx context.Context, batchID int64) (*dto.AdmissionTemplateResponse, error) {
	t, err := s.admissionRepo.LatestAdmissionTemplate(ctx, batchID)
	if err != nil {
		return nil, err
	}

	date, err := decodeExamDates(t.ExamDates)
	if err != nil {
		return nil, fmt.Errorf("stored admission template is corrupt: %w", err)
	}

	resp := &dto.AdmissionTemplateResponse{
		AdmissionID:   t.AdmissionID,
		BatchID:       t.BatchID,
		GeneratedDate: t.GeneratedDate,
		Subjects:      decodeSubjects(t.Subjects),
		Date:          date,
		Description:   t.Description,
		Instructions:  t.Instructions,
		Provider:      t.Provider,
	}

	if t.Data != "" {
		var data interface{}
		if err := json.Unmarshal([]byte(t.Data), &data); err != nil {
			return nil, fmt.Errorf("stored admission data is not valid JSON: %w", err)
		}
		resp.Data = data
	}

	return resp, nil
}

// BatchAdmissionDetails returns the single-row admission summary for a batch
func (s *admissionService) BatchAdmissionDetails(ctx context.Context, batchID int64) (*models.BatchAdmissionDetails, error) {
	return s.admissionRepo.BatchAdmissionDetails(ctx, batchID)
}
