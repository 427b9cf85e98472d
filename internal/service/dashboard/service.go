package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/dashboard/models"
)

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	location        *time.Location
	clock           TimeProvider
	logger          Logger
}

func NewService(appointmentRepo AppointmentRepository, customerRepo CustomerRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		location:        location,
		clock:           realTime{},
		logger:          logger,
	}
}

// Stats counts non-cancelled appointments overall, per service and for
// each of the last DashboardDays calendar days ending today
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	stats, err := s.compute(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return models.FromDomainStats(stats), nil
}

func (s *Service) compute(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	total, err := s.appointmentRepo.Count(ctx)
	if err != nil {
		return nil, s.internal("count appointments", err)
	}
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, s.internal("count customers", err)
	}
	perService, err := s.appointmentRepo.CountByService(ctx)
	if err != nil {
		return nil, s.internal("count by service", err)
	}

	local := now.In(s.location)
	y, m, d := local.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.location)
	from := today.AddDate(0, 0, -(domain.DashboardDays - 1))
	to := today.AddDate(0, 0, 1)

	recent, err := s.appointmentRepo.List(ctx, domain.AppointmentFilter{From: &from, To: &to})
	if err != nil {
		return nil, s.internal("list recent", err)
	}

	days := make([]domain.DayCount, domain.DashboardDays)
	index := make(map[string]int, domain.DashboardDays)
	for i := range days {
		day := from.AddDate(0, 0, i)
		days[i] = domain.DayCount{Date: day}
		index[day.Format(domain.DateFormat)] = i
	}
	for _, a := range recent {
		if i, ok := index[a.StartAt.In(s.location).Format(domain.DateFormat)]; ok {
			days[i].Count++
		}
	}

	return &domain.DashboardStats{
		TotalAppointments: total,
		TotalCustomers:    customers,
		LastDays:          days,
		PerService:        perService,
	}, nil
}

func (s *Service) internal(step string, err error) error {
	s.logger.Error("Stats: %s: %v", step, err)
	return fmt.Errorf("%w: Stats - %s: %v", ErrInternal, step, err)
}
