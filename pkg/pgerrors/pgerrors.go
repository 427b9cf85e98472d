package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the service reacts to
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	ExclusionViolation   = "23P01"
	SerializationFailure = "40001"
)

func code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return code(err) == UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return code(err) == ForeignKeyViolation
}

func IsExclusionViolation(err error) bool {
	return code(err) == ExclusionViolation
}

// IsSerializationFailure reports a serializable transaction that lost a race
func IsSerializationFailure(err error) bool {
	return code(err) == SerializationFailure
}

// Constraint returns the violated constraint name, if any
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
