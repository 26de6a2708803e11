package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrOrderFinished = errors.New("order is already completed")
	ErrCartChanged   = errors.New("order lines changed since they were priced")
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsRetryable reports whether a failed write lost a race with another
// transaction and can be attempted again from the start.
func IsRetryable(err error) bool {
	switch pqCode(err) {
	case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
		return true
	}
	return false
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == pgForeignKeyViolation
}
