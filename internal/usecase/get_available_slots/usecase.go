package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase resolves bookable slots for a service and date
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	cache           SlotCache
	metrics         Metrics
	location        *time.Location
	defaultStepMins int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case. cache may be nil.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	cache SlotCache,
	metrics Metrics,
	location *time.Location,
	defaultStepMins int,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		cache:           cache,
		metrics:         metrics,
		location:        location,
		defaultStepMins: defaultStepMins,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs the availability resolution
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := dayIn(req.Date, uc.location)
	dateKey := day.Format(domain.DateFormat)
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, dateKey)

	// 2. Load the service
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Load the weekly schedule
	schedule, err := uc.scheduleRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		uc.logger.Info("GetAvailableSlots: no schedule configured, every day is closed")
		schedule = domain.ClosedWeek(uc.defaultStepMins)
	}

	// 4. Cached slots or a fresh resolution
	starts, err := uc.resolve(ctx, day, dateKey, service, schedule)
	if err != nil {
		return nil, err
	}

	// 5. Drop slots that already started
	starts = dropPast(starts, uc.timeProvider.Now())

	slots := make([]Slot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, Slot{Start: s, End: s.Add(service.Duration())})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d, date=%s", len(slots), req.ServiceID, dateKey)

	return &Response{
		Date:         day,
		ServiceID:    service.ID,
		DurationMins: service.DurationMins,
		SlotStepMins: schedule.SlotStepMins,
		Slots:        slots,
	}, nil
}

// resolve returns cached slots when present, otherwise reads the day's
// appointments and runs the resolver
func (uc *UseCase) resolve(
	ctx context.Context,
	day time.Time,
	dateKey string,
	service *domain.Service,
	schedule *domain.WeeklySchedule,
) ([]time.Time, error) {
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, dateKey, service.ID)
		switch {
		case err != nil:
			uc.metrics.IncSlotCache(metrics.CacheError)
			uc.logger.Warn("GetAvailableSlots: slot cache read failed, falling back to store: %v", err)
		case ok:
			uc.metrics.IncSlotCache(metrics.CacheHit)
			return cached, nil
		default:
			uc.metrics.IncSlotCache(metrics.CacheMiss)
		}
	}

	daySchedule := schedule.DayFor(day)

	var existing []domain.Interval
	if daySchedule.Enabled {
		window := domain.Interval{Start: day, End: day.AddDate(0, 0, 1)}
		appointments, err := uc.appointmentRepo.ListOverlapping(ctx, window)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list appointments for %s: %v", dateKey, err)
			return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}
		existing = domain.ActiveIntervals(appointments)
	}

	starts, err := ResolveSlots(day, service.DurationMins, schedule.SlotStepMins, daySchedule, existing)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: resolve failed for %s: %v", dateKey, err)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, dateKey, service.ID, starts); err != nil {
			uc.logger.Warn("GetAvailableSlots: slot cache write failed: %v", err)
		}
	}

	return starts, nil
}
