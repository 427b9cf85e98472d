package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Profile validation errors
var (
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidEmail     = errors.New("email is invalid")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Role of an authenticated caller
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Identity authenticated caller, resolved from the access token
type Identity struct {
	SubjectID int64
	Role      Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Customer a person who books appointments
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Admin staff account
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail trims and lowercases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword enforces the minimum length
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	return nil
}

// ValidateProfile checks an already trimmed name and normalized email
func ValidateProfile(name, email string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrNameRequired, MaxNameLength)
	}
	if email == "" {
		return fmt.Errorf("%w: required", ErrInvalidEmail)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}
