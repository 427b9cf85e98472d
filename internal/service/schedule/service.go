package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule/models"
)

// Service weekly availability configuration
type Service struct {
	scheduleRepo    ScheduleRepository
	invalidator     SlotInvalidator
	defaultStepMins int
	logger          Logger
}

// NewService creates the service. invalidator may be nil.
func NewService(scheduleRepo ScheduleRepository, invalidator SlotInvalidator, defaultStepMins int, logger Logger) *Service {
	if defaultStepMins <= 0 {
		defaultStepMins = domain.DefaultSlotStepMins
	}
	return &Service{
		scheduleRepo:    scheduleRepo,
		invalidator:     invalidator,
		defaultStepMins: defaultStepMins,
		logger:          logger,
	}
}

// Get returns the weekly schedule; a fully closed week when none was saved
func (s *Service) Get(ctx context.Context) (*models.ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("Get: no schedule saved, returning a closed week")
			return models.FromDomainSchedule(domain.ClosedWeek(s.defaultStepMins)), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSchedule(schedule), nil
}

// Update validates and replaces the weekly schedule.
// Every cached slot list is dropped afterwards.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	schedule, err := toDomain(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.InvalidateAll(ctx); err != nil {
			s.logger.Warn("Update: slot cache invalidation failed: %v", err)
		}
	}

	s.logger.Info("Update: schedule saved, step=%d", saved.SlotStepMins)
	return models.FromDomainSchedule(saved), nil
}
