package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the services translate into typed results.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// IsForeignKeyViolation reports whether err is a foreign key constraint
// violation (a delete or insert blocked by referencing rows).
func IsForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// IsCheckViolation reports whether err is a check constraint violation.
func IsCheckViolation(err error) bool {
	return pgErrCode(err) == pgCheckViolation
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
