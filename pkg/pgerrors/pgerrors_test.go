package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation, Constraint: "appointments_active_start_uniq"})
	serial := fmt.Errorf("commit: %w", &pq.Error{Code: SerializationFailure})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsSerializationFailure(unique))
	assert.Equal(t, "appointments_active_start_uniq", Constraint(unique))

	assert.True(t, IsSerializationFailure(serial))
	assert.False(t, IsExclusionViolation(serial))

	plain := errors.New("connection refused")
	assert.False(t, IsUniqueViolation(plain))
	assert.Equal(t, "", Constraint(plain))
}
