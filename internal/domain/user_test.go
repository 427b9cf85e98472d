package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, ValidateProfile("Demo", "demo@customer.com"))
	assert.ErrorIs(t, ValidateProfile("", "demo@customer.com"), ErrNameRequired)
	assert.ErrorIs(t, ValidateProfile("Demo", ""), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateProfile("Demo", "not-an-email"), ErrInvalidEmail)
	assert.ErrorIs(t, ValidateProfile("Demo", "Demo <demo@customer.com>"), ErrInvalidEmail)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("123456"))
	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "demo@customer.com", NormalizeEmail("  Demo@Customer.COM "))
}
