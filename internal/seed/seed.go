// Package seed provisions the baseline rows a fresh deployment needs:
// the role catalogue and a default manager account.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tharindu/examdesk/internal/app/models"
	"github.com/tharindu/examdesk/internal/pkg/auth"
	"github.com/tharindu/examdesk/internal/pkg/logger"
)

const (
	defaultManagerUserName = "admin"
	defaultManagerPassword = "ChangeMe.123"
)

// SeedDatabase inserts the role rows and, when no manager account exists
// yet, a default manager so the deployment can be administered.
func SeedDatabase(pool *pgxpool.Pool) error {
	ctx := context.Background()

	if err := seedRoles(ctx, pool); err != nil {
		return err
	}
	if err := seedDefaultManager(ctx, pool); err != nil {
		return err
	}
	return nil
}

func seedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	roles := map[int]string{
		models.RoleManager: "manager",
		models.RoleStudent: "student",
	}
	for id, name := range roles {
		_, err := pool.Exec(ctx,
			`INSERT INTO app_role (role_id, role_name) VALUES ($1, $2) ON CONFLICT (role_id) DO NOTHING`,
			id, name)
		if err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	return nil
}

func seedDefaultManager(ctx context.Context, pool *pgxpool.Pool) error {
	var existing int64
	err := pool.QueryRow(ctx,
		`SELECT user_id FROM app_user WHERE role_id = $1 LIMIT 1`, models.RoleManager).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("failed to check for existing manager: %w", err)
	}

	hashed, err := auth.HashPassword(defaultManagerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default manager password: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO app_user (user_name, password, role_id) VALUES ($1, $2, $3) RETURNING user_id`,
		defaultManagerUserName, hashed, models.RoleManager).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to insert default manager user: %w", err)
	}

	var mID int64
	err = tx.QueryRow(ctx, `INSERT INTO manager (user_id) VALUES ($1) RETURNING m_id`, userID).Scan(&mID)
	if err != nil {
		return fmt.Errorf("failed to insert default manager: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO manager_detail (m_id, name, email) VALUES ($1, $2, $3)`,
		mID, "Default Manager", "admin@example.edu")
	if err != nil {
		return fmt.Errorf("failed to insert default manager detail: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Warn().
		Str("user_name", defaultManagerUserName).
		Msg("Seeded default manager account; change its password immediately")
	return nil
}
