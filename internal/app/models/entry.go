package models

// StudentSubject is one subject enrollment row for a student in a batch.
type StudentSubject struct {
	SubID       string `json:"sub_id"`
	SubName     string `json:"sub_name"`
	Eligibility string `json:"eligibility"`
	ExamType    string `json:"exam_type"`
}

// SubjectEntry is the per-subject slice of an attendance/admission row.
type SubjectEntry struct {
	SubID       string `json:"sub_id"`
	Eligibility string `json:"eligibility"`
}

// StudentSubjectRow is the flat shape returned by the students-with-subjects
// procedure, one row per (student, subject) pairing.
type StudentSubjectRow struct {
	SID         int64
	Name        string
	IndexNum    string
	UserName    string
	ExamType    string
	SubID       string
	Eligibility string
}

// StudentWithSubjects is a student with their accumulated subject entries.
type StudentWithSubjects struct {
	SID      int64          `json:"s_id"`
	Name     string         `json:"name"`
	IndexNum string         `json:"index_num"`
	UserName string         `json:"user_name"`
	Subjects []SubjectEntry `json:"subjects"`
}

// IndexedStudent is one student after index-number generation.
type IndexedStudent struct {
	SID      int64  `json:"s_id"`
	Name     string `json:"name"`
	UserName string `json:"user_name"`
	IndexNum string `json:"index_num"`
}

// MedicalResitStudent is one (student, exam type) pair queued for
// registration under a subject.
type MedicalResitStudent struct {
	SID  int64  `json:"s_id" binding:"required"`
	Type string `json:"type" binding:"required"`
}
