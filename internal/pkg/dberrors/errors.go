package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

// Stored procedures reject a request for domain reasons with
// RAISE EXCEPTION, which surfaces as SQLSTATE P0001 (raise_exception).
const businessRuleCode = "P0001"

// BusinessRuleMessage returns the message raised by a stored procedure when
// the error carries the domain rejection SQLSTATE, and whether it did.
func BusinessRuleMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == businessRuleCode {
		return pgErr.Message, true
	}
	return "", false
}

// IsUniqueViolation checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}
