package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service bookable services catalogue
type Service struct {
	serviceRepo ServiceRepository
	invalidator SlotInvalidator
	logger      Logger
}

// NewService creates the catalogue service. invalidator may be nil.
func NewService(serviceRepo ServiceRepository, invalidator SlotInvalidator, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	list, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(svc), nil
}

// Create adds a service. Admin only.
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	svc := &domain.Service{
		Name:         strings.TrimSpace(req.Name),
		PricePence:   ptr.Value(req.PricePence),
		DurationMins: ptr.Value(req.DurationMins),
	}
	if svc.DurationMins == 0 {
		svc.DurationMins = domain.DefaultServiceDurationMins
	}
	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Create")
	s.logger.Info("Create: created service id=%d %q", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// Update applies a partial update. Admin only.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.PricePence != nil {
		svc.PricePence = *req.PricePence
	}
	if req.DurationMins != nil {
		svc.DurationMins = *req.DurationMins
	}
	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Update")
	s.logger.Info("Update: updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete removes a service that no appointment references. Admin only.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrServiceInUse):
			s.logger.Warn("Delete: service id=%d has appointments", id)
			return ErrServiceInUse
		default:
			s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.invalidate(ctx, "Delete")
	s.logger.Info("Delete: deleted service id=%d", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return svc, nil
}

func (s *Service) invalidate(ctx context.Context, op string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateAll(ctx); err != nil {
		s.logger.Warn("%s: slot cache invalidation failed: %v", op, err)
	}
}

func validateService(svc *domain.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(svc.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if svc.PricePence < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if svc.DurationMins <= 0 || svc.DurationMins > domain.MaxServiceDuration {
		return fmt.Errorf("%w: durationMins must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDuration)
	}
	return nil
}
