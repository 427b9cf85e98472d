package appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository appointment storage
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// OutboxRepository events written with the status change
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// SlotInvalidator drops cached slot lists of one date
type SlotInvalidator interface {
	InvalidateDate(ctx context.Context, date string) error
}

// TransactionManager runs cancel and delete atomically with their events
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
