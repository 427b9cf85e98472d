package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository appointment storage
type AppointmentRepository interface {
	// ListOverlapping returns non-cancelled appointments intersecting the interval
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Appointment, error)
}

// ServiceRepository service catalogue
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository weekly schedule storage
type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.WeeklySchedule, error)
}

// SlotCache read-through cache of resolved slot lists
type SlotCache interface {
	Get(ctx context.Context, date string, serviceID int64) ([]time.Time, bool, error)
	Set(ctx context.Context, date string, serviceID int64, slots []time.Time) error
}

// Metrics cache outcome counters
type Metrics interface {
	IncSlotCache(result string)
}

type noopMetrics struct{}

func (noopMetrics) IncSlotCache(string) {}

// TimeProvider current time source, swapped in tests
type TimeProvider interface {
	Now() time.Time
}

// Logger logging interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider wall clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
