package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service appointment listing, cancellation and removal
type Service struct {
	appointmentRepo AppointmentRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	invalidator     SlotInvalidator
	location        *time.Location
	now             func() time.Time
	logger          Logger
}

// NewService creates the service. invalidator may be nil.
func NewService(
	appointmentRepo AppointmentRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	invalidator SlotInvalidator,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		location:        location,
		now:             time.Now,
		logger:          logger,
	}
}

// ListMine returns the customer's appointments, cancelled included, newest first
func (s *Service) ListMine(ctx context.Context, customerID int64) (*models.AppointmentListResponse, error) {
	list, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{CustomerID: &customerID, IncludeCancelled: true})
	if err != nil {
		s.logger.Error("ListMine: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: %d appointments for customer=%d", len(list), customerID)
	return models.FromDomainAppointmentList(list), nil
}

// ListAll admin listing with optional period and status filters
func (s *Service) ListAll(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAll: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}
	filter.IncludeCancelled = true

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// Get returns one appointment to its owner or an admin
func (s *Service) Get(ctx context.Context, id int64, identity domain.Identity) (*models.AppointmentResponse, error) {
	a, err := s.load(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(a, identity); err != nil {
		s.logger.Warn("Get: access denied for %s=%d to appointment id=%d", identity.Role, identity.SubjectID, id)
		return nil, err
	}
	return models.FromDomainAppointment(a), nil
}

// Cancel marks the appointment cancelled. History is kept.
func (s *Service) Cancel(ctx context.Context, id int64, identity domain.Identity) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d by %s=%d", id, identity.Role, identity.SubjectID)

	var result *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := s.load(txCtx, "Cancel", id)
		if err != nil {
			return err
		}
		if err := checkAccess(a, identity); err != nil {
			s.logger.Warn("Cancel: access denied for %s=%d to appointment id=%d", identity.Role, identity.SubjectID, id)
			return err
		}
		if !a.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%d is already cancelled", id)
			return ErrAlreadyCancelled
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		a.Status = domain.StatusCancelled

		if err := s.emit(txCtx, domain.EventAppointmentCancelled, a); err != nil {
			return err
		}
		result = a
		return nil
	})
	if err != nil {
		return nil, s.wrapTx("Cancel", err)
	}

	s.invalidate(ctx, result.StartAt)
	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return models.FromDomainAppointment(result), nil
}

// Delete removes the appointment row. Admin only.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var deleted *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := s.load(txCtx, "Delete", id)
		if err != nil {
			return err
		}
		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		if err := s.emit(txCtx, domain.EventAppointmentDeleted, a); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		return s.wrapTx("Delete", err)
	}

	s.invalidate(ctx, deleted.StartAt)
	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	a, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return a, nil
}

func (s *Service) emit(ctx context.Context, eventType string, a *domain.Appointment) error {
	event, err := domain.NewAppointmentEvent(uuid.NewString(), eventType, a, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: build %s event: %v", ErrInternal, eventType, err)
	}
	if err := s.outboxRepo.Insert(ctx, event); err != nil {
		s.logger.Error("emit: outbox insert for appointment id=%d failed: %v", a.ID, err)
		return fmt.Errorf("%w: outbox insert: %v", ErrInternal, err)
	}
	return nil
}

// wrapTx keeps domain errors and turns transaction plumbing failures into ErrInternal
func (s *Service) wrapTx(op string, err error) error {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrInternal):
		return err
	default:
		s.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}
}

func (s *Service) invalidate(ctx context.Context, start time.Time) {
	if s.invalidator == nil {
		return
	}
	date := start.In(s.location).Format(domain.DateFormat)
	if err := s.invalidator.InvalidateDate(ctx, date); err != nil {
		s.logger.Warn("invalidate: slot cache for %s: %v", date, err)
	}
}

// checkAccess owner or admin
func checkAccess(a *domain.Appointment, identity domain.Identity) error {
	if identity.IsAdmin() {
		return nil
	}
	if identity.Role == domain.RoleCustomer && a.CustomerID == identity.SubjectID {
		return nil
	}
	return ErrAccessDenied
}
