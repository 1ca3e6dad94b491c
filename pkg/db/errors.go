package db

import (
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation,
// across the postgres drivers and the sqlite driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if stderrors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite reports constraint failures as plain text.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed")
}

// IsNotFound reports whether err indicates a missing record.
func IsNotFound(err error) bool {
	return stderrors.Is(err, gorm.ErrRecordNotFound)
}
