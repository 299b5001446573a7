package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes for constraint breaches.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique-constraint failure on the
// named constraint. An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error

	if !errors.As(err, &pqErr) {
		return false
	}

	if pqErr.Code != uniqueViolation {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}

// IsForeignKeyViolation reports whether err is a foreign-key failure, such as
// deleting a product that order items still reference.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error

	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == foreignKeyViolation
}
