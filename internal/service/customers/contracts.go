package customers

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CustomerRepository customer accounts storage
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// PasswordHasher bcrypt in production
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
