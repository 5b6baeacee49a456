package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
// An empty constraintName matches any unique constraint.
func IsDuplicateKeyError(err error, constraintName string) bool {
	return isConstraintError(err, pgUniqueViolation, constraintName)
}

// IsForeignKeyError checks if the error is a PostgreSQL foreign key violation.
// An empty constraintName matches any foreign key.
func IsForeignKeyError(err error, constraintName string) bool {
	return isConstraintError(err, pgForeignKeyViolation, constraintName)
}

// IsConnectionError reports whether err came from the connection rather
// than from the statement, i.e. the server was never reached or hung up.
func IsConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}

func isConstraintError(err error, code, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == code && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
