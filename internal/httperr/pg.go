package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict matches the bookings overlap constraint and unique
// violations raised by a concurrent insert of the same slot.
func IsExclusionConflict(err error) bool {
	switch pgCode(err) {
	case pgExclusionViolation, pgUniqueViolation:
		return true
	}
	return false
}

// IsRetryable matches transaction aborts that are safe to replay once.
func IsRetryable(err error) bool {
	switch pgCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}
