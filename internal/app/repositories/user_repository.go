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
	"github.com/tharindu/examdesk/internal/pkg/dberrors"
)

// UserRepository handles account persistence
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// RegisterStudent creates the user, student and student_detail rows in one
// transaction. The uniqueness check and the inserts must not race across
// concurrent registrations, so the whole sequence commits or rolls back as
// a unit.
func (r *UserRepository) RegisterStudent(ctx context.Context, reg *models.StudentRegistration, passwordHash string) (int64, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	exists, err := usernameExists(ctx, tx, reg.UserName)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrUserAlreadyExists
	}

	var userID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO app_user (user_name, password, role_id)
		VALUES ($1, $2, $3)
		RETURNING user_id`,
		reg.UserName, passwordHash, models.RoleStudent).Scan(&userID)
	if err != nil {
		return 0, translateInsertError(err, "error creating user")
	}

	var sID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO student (user_id)
		VALUES ($1)
		RETURNING s_id`,
		userID).Scan(&sID)
	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO student_detail (s_id, name, d_id, email, contact_no, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sID, reg.Name, reg.DID, reg.Email, reg.ContactNo, reg.Address, reg.Status)
	if err != nil {
		return 0, fmt.Errorf("error creating student detail: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit registration: %w", err)
	}

	return userID, nil
}

// RegisterManager creates the user, manager and manager_detail rows in one
// transaction, mirroring RegisterStudent.
func (r *UserRepository) RegisterManager(ctx context.Context, reg *models.ManagerRegistration, passwordHash string) (int64, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	exists, err := usernameExists(ctx, tx, reg.UserName)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrUserAlreadyExists
	}

	var userID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO app_user (user_name, password, role_id)
		VALUES ($1, $2, $3)
		RETURNING user_id`,
		reg.UserName, passwordHash, models.RoleManager).Scan(&userID)
	if err != nil {
		return 0, translateInsertError(err, "error creating user")
	}

	var mID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO manager (user_id)
		VALUES ($1)
		RETURNING m_id`,
		userID).Scan(&mID)
	if err != nil {
		return 0, fmt.Errorf("error creating manager: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO manager_detail (m_id, name, email, contact_no, address, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		mID, reg.Name, reg.Email, reg.ContactNo, reg.Address, reg.Status)
	if err != nil {
		return 0, fmt.Errorf("error creating manager detail: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit registration: %w", err)
	}

	return userID, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(ctx context.Context, userName string) (*models.User, error) {
	conn, err := db.Acquire(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	user := &models.User{}
	err = conn.QueryRow(ctx, `
		SELECT user_id, user_name, password, role_id
		FROM app_user
		WHERE user_name = $1`,
		userName).Scan(&user.UserID, &user.UserName, &user.Password, &user.RoleID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

func usernameExists(ctx context.Context, tx pgx.Tx, userName string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM app_user WHERE user_name = $1)`,
		userName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// translateInsertError keeps the duplicate-key case distinguishable when two
// registrations race past the existence check; the transaction isolation
// turns the loser's insert into a unique violation.
func translateInsertError(err error, msg string) error {
	if dberrors.IsUniqueViolation(err, "app_user_user_name_key") {
		return apperrors.ErrUserAlreadyExists
	}
	return fmt.Errorf("%s: %w", msg, err)
}
