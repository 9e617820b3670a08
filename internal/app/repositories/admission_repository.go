package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/db"
	"github.com/tharindu/examdesk/internal/pkg/apperrors"
)

// AdmissionRepository invokes the admission-template stored procedures
type AdmissionRepository struct {
	db *pgxpool.Pool
}

// NewAdmissionRepository creates a new AdmissionRepository
func NewAdmissionRepository(db *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{
		db: db,
	}
}

// UpsertAdmission creates or replaces the admission template for a batch.
// Prior versions are retained by the procedure; only the latest is exposed
// on the read path.
func (r *AdmissionRepository) UpsertAdmission(ctx context.Context, t *models.AdmissionTemplate) error {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `SELECT update_admission_data($1, $2, $3, $4, $5, $6, $7)`,
		t.BatchID, t.GeneratedDate, t.Subjects, t.ExamDates, t.Description, t.Instructions, t.Provider)
	if err != nil {
		return translateProcError(err, "error adding or updating admission data")
	}

	return nil
}

// LatestAdmissionTemplate returns the most recent template row for a batch
func (r *AdmissionRepository) LatestAdmissionTemplate(ctx context.Context, batchID int64) (*models.AdmissionTemplate, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	t := &models.AdmissionTemplate{}
	err = conn.QueryRow(ctx, `
		SELECT admission_id, batch_id, generated_date, subjects, exam_dates, description, instructions, provider, data, created_at
		FROM latest_admission_template($1)`,
		batchID).Scan(
		&t.AdmissionID, &t.BatchID, &t.GeneratedDate, &t.Subjects, &t.ExamDates,
		&t.Description, &t.Instructions, &t.Provider, &t.Data, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("no admission template found")
		}
		return nil, translateProcError(err, "error fetching latest admission template")
	}

	return t, nil
}

// BatchAdmissionDetails returns the single-row admission summary for a batch
func (r *AdmissionRepository) BatchAdmissionDetails(ctx context.Context, batchID int64) (*models.BatchAdmissionDetails, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	d := &models.BatchAdmissionDetails{}
	err = conn.QueryRow(ctx, `
		SELECT batch_id, batch_code, description, students
		FROM batch_admission_details($1)`,
		batchID).Scan(&d.BatchID, &d.BatchCode, &d.Description, &d.Students)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("no admission details found for batch")
		}
		return nil, fmt.Errorf("error fetching batch admission details: %w", err)
	}

	return d, nil
}
