package dto

import "github.com/tharindu/examdesk/internal/app/models"

// MedicalResitRequest maps each subject onto the ordered list of students
// to register under it.
type MedicalResitRequest struct {
	BatchID int64                                   `json:"batch_id" binding:"required"`
	Data    map[string][]models.MedicalResitStudent `json:"data" binding:"required"`
}

// StudentSubjectsRequest identifies one student's enrollment in one batch
type StudentSubjectsRequest struct {
	BatchID int64 `json:"batch_id" binding:"required"`
	SID     int64 `json:"s_id" binding:"required"`
}

// BatchRequest identifies an exam cohort
type BatchRequest struct {
	BatchID int64 `json:"batch_id" binding:"required"`
}

// MissingIndexNumbersResponse lists the students still without an index number
type MissingIndexNumbersResponse struct {
	Count     int      `json:"count"`
	UserNames []string `json:"user_names"`
}

// GenerateIndexNumbersRequest drives one allocation run. StartsFrom arrives
// as a string from the form layer and is parsed server-side.
type GenerateIndexNumbersRequest struct {
	BatchID    int64  `json:"batch_id" binding:"required"`
	Course     string `json:"course" binding:"required"`
	Batch      string `json:"batch" binding:"required"`
	StartsFrom string `json:"startsFrom" binding:"required"`
}

// LastIndexNumberRequest identifies one (course, batch) sequence
type LastIndexNumberRequest struct {
	Course string `json:"course" binding:"required"`
	Batch  string `json:"batch" binding:"required"`
}

// LastIndexNumberResponse carries the numeric suffix of the highest issued
// index number, 0 when none has been issued.
type LastIndexNumberResponse struct {
	LastIndex int `json:"lastIndex"`
}

// GroupedStudentsResponse buckets students by exam type for the
// attendance-sheet renderer.
type GroupedStudentsResponse struct {
	Proper  []models.StudentWithSubjects `json:"P"`
	Medical []models.StudentWithSubjects `json:"M"`
	Resit   []models.StudentWithSubjects `json:"R"`
}
