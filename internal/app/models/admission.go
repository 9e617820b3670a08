package models

import "time"

// AdmissionTemplate is one stored admission-template version for a batch.
// Subjects and ExamDates hold the delimited wire encoding; Data holds the
// JSON document assembled by the data layer.
type AdmissionTemplate struct {
	AdmissionID   int64     `json:"admission_id"`
	BatchID       int64     `json:"batch_id"`
	GeneratedDate string    `json:"generated_date"`
	Subjects      string    `json:"subjects"`
	ExamDates     string    `json:"exam_dates"`
	Description   string    `json:"description"`
	Instructions  string    `json:"instructions"`
	Provider      string    `json:"provider"`
	Data          string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExamYear groups the exam months scheduled under one calendar year.
type ExamYear struct {
	Year   int      `json:"year"`
	Months []string `json:"months"`
}

// BatchAdmissionDetails is the single-row summary used when printing
// admission documents for a batch.
type BatchAdmissionDetails struct {
	BatchID     int64  `json:"batch_id"`
	BatchCode   string `json:"batch_code"`
	Description string `json:"description"`
	Students    int    `json:"students"`
}
