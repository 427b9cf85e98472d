package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/pgerrors"
)

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }

// UseCase books appointments without ever letting two active ones overlap
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	invalidator     SlotInvalidator
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	idGenerator     IDGenerator
	logger          Logger
}

// NewUseCase creates the use case. invalidator and metrics may be nil.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	invalidator SlotInvalidator,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		idGenerator:     uuidGenerator{},
		logger:          logger,
	}
}

// Execute creates a confirmed appointment or returns ErrSlotConflict.
// The overlap scan and the insert run in one serializable transaction.
// Failures are never retried here: a retry could double-submit.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.IncBooking(metrics.BookingRejected)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: customer=%d, service=%d, start=%s",
		req.CustomerID, req.ServiceID, req.StartAt.Format(time.RFC3339))

	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			uc.metrics.IncBooking(metrics.BookingRejected)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		uc.metrics.IncBooking(metrics.BookingFailed)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	interval := domain.Interval{Start: req.StartAt, End: req.StartAt.Add(service.Duration())}
	if !interval.IsValid() {
		uc.logger.Warn("CreateAppointment: service id=%d yields an empty interval", service.ID)
		uc.metrics.IncBooking(metrics.BookingRejected)
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if interval.Start.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: start %s is in the past", interval.Start.Format(time.RFC3339))
		uc.metrics.IncBooking(metrics.BookingRejected)
		return nil, ErrStartInPast
	}

	created, err := uc.tryBook(ctx, interval, req.CustomerID, service, strings.TrimSpace(req.Note))
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.metrics.IncBooking(metrics.BookingConflict)
		default:
			uc.metrics.IncBooking(metrics.BookingFailed)
		}
		return nil, err
	}
	uc.metrics.IncBooking(metrics.BookingCreated)

	uc.invalidate(ctx, created.StartAt)

	uc.logger.Info("CreateAppointment: created appointment id=%d [%s, %s)",
		created.ID, created.StartAt.Format(time.RFC3339), created.EndAt.Format(time.RFC3339))

	return &Response{
		ID:          created.ID,
		CustomerID:  created.CustomerID,
		ServiceID:   created.ServiceID,
		ServiceName: service.Name,
		StartAt:     created.StartAt,
		EndAt:       created.EndAt,
		Status:      created.Status,
		Note:        created.Note,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// tryBook scans for overlaps and inserts in one transaction
func (uc *UseCase) tryBook(
	ctx context.Context,
	interval domain.Interval,
	customerID int64,
	service *domain.Service,
	note string,
) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.ListOverlapping(txCtx, interval)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if a.IsActive() && a.Interval().Overlaps(interval) {
				uc.logger.Warn("CreateAppointment: [%s, %s) overlaps appointment id=%d",
					interval.Start.Format(time.RFC3339), interval.End.Format(time.RFC3339), a.ID)
				return ErrSlotConflict
			}
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			CustomerID: customerID,
			ServiceID:  service.ID,
			StartAt:    interval.Start,
			EndAt:      interval.End,
			Status:     domain.StatusConfirmed,
			Note:       note,
		})
		if err != nil {
			return err
		}

		event, err := domain.NewAppointmentEvent(uc.idGenerator.NewID(), domain.EventAppointmentCreated, created, uc.timeProvider.Now().UTC())
		if err != nil {
			return fmt.Errorf("%w: build event: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, uc.classify(err)
	}
	return result, nil
}

// classify maps store errors onto the use case taxonomy
func (uc *UseCase) classify(err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return ErrSlotConflict
	case errors.Is(err, appointmentRepo.ErrSlotTaken),
		errors.Is(err, appointmentRepo.ErrSerializationFailure),
		pgerrors.IsSerializationFailure(err):
		uc.logger.Warn("CreateAppointment: lost a concurrent booking race: %v", err)
		return ErrSlotConflict
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateAppointment: %v", err)
		return err
	default:
		uc.logger.Error("CreateAppointment: booking transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func (uc *UseCase) invalidate(ctx context.Context, start time.Time) {
	if uc.invalidator == nil {
		return
	}
	date := start.In(uc.location).Format(domain.DateFormat)
	if err := uc.invalidator.InvalidateDate(ctx, date); err != nil {
		uc.logger.Warn("CreateAppointment: slot cache invalidation for %s failed: %v", date, err)
	}
}

func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if len(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}
	return nil
}
