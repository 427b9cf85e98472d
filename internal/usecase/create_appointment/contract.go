package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository appointment storage used inside the booking transaction
type AppointmentRepository interface {
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ServiceRepository service catalogue
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// OutboxRepository stores events in the booking transaction
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// SlotInvalidator drops cached slot lists of a date. Called after commit.
type SlotInvalidator interface {
	InvalidateDate(ctx context.Context, date string) error
}

// TransactionManager serializable transactions
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics booking outcome counter
type Metrics interface {
	IncBooking(result string)
}

type noopMetrics struct{}

func (noopMetrics) IncBooking(string) {}

// TimeProvider current time source, swapped in tests
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator event id source
type IDGenerator interface {
	NewID() string
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
