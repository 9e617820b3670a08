package dto

import "github.com/tharindu/examdesk/internal/app/models"

// UpsertAdmissionRequest creates or replaces the admission template for a
// batch. Subjects holds colon-joined groups; Date holds per-year month lists.
// Both are flattened into the template's delimited wire encoding on write.
type UpsertAdmissionRequest struct {
	BatchID       int64             `json:"batch_id" binding:"required"`
	GeneratedDate string            `json:"generated_date" binding:"required"`
	Subjects      [][]string        `json:"subjects" binding:"required"`
	Date          []models.ExamYear `json:"date" binding:"required"`
	Description   string            `json:"description"`
	Instructions  string            `json:"instructions"`
	Provider      string            `json:"provider"`
}

// AdmissionTemplateResponse is the latest template with its wire encodings
// decoded back into structured form.
type AdmissionTemplateResponse struct {
	AdmissionID   int64             `json:"admission_id"`
	BatchID       int64             `json:"batch_id"`
	GeneratedDate string            `json:"generated_date"`
	Subjects      [][]string        `json:"subjects"`
	Date          []models.ExamYear `json:"date"`
	Description   string            `json:"description"`
	Instructions  string            `json:"instructions"`
	Provider      string            `json:"provider"`
	Data          interface{}       `json:"data,omitempty"`
}
