package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type AppointmentRepository interface {
	Count(ctx context.Context) (int, error)
	CountByService(ctx context.Context) ([]domain.ServiceCount, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

type CustomerRepository interface {
	Count(ctx context.Context) (int, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Error(format string, v ...interface{})
}
