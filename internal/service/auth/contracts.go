package auth

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AdminRepository staff accounts lookup
type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// CustomerRepository customer accounts lookup
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// Registrar creates customer accounts with profile validation
type Registrar interface {
	Register(ctx context.Context, name, email, phone, password string) (*domain.Customer, error)
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	Issue(subject int64, email, role string) (string, error)
}

// PasswordComparer returns an error when plain does not match hash
type PasswordComparer interface {
	Compare(hash, plain string) error
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
