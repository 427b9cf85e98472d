package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	adminRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/admin"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
)

// Demo accounts
const (
	AdminEmail       = "admin@booking.com"
	AdminPassword    = "admin123"
	CustomerEmail    = "demo@customer.com"
	CustomerPassword = "customer123"
)

var ErrSeed = errors.New("seed: failed")

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
}

type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
}

type ScheduleRepository interface {
	Get(ctx context.Context) (*domain.WeeklySchedule, error)
	Upsert(ctx context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
}

// Seeder creates demo data. Existing rows are never touched,
// so running it twice is harmless.
type Seeder struct {
	admins    AdminRepository
	customers CustomerRepository
	services  ServiceRepository
	schedule  ScheduleRepository
	hasher    PasswordHasher
	logger    Logger
}

func NewSeeder(
	admins AdminRepository,
	customers CustomerRepository,
	services ServiceRepository,
	schedule ScheduleRepository,
	hasher PasswordHasher,
	logger Logger,
) *Seeder {
	return &Seeder{
		admins:    admins,
		customers: customers,
		services:  services,
		schedule:  schedule,
		hasher:    hasher,
		logger:    logger,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"admin", s.admin},
		{"customer", s.customer},
		{"services", s.catalog},
		{"schedule", s.weeklySchedule},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSeed, step.name, err)
		}
	}
	return nil
}

func (s *Seeder) admin(ctx context.Context) error {
	_, err := s.admins.GetByEmail(ctx, AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adminRepo.ErrAdminNotFound) {
		return err
	}
	hash, err := s.hasher.Hash(AdminPassword)
	if err != nil {
		return err
	}
	a, err := s.admins.Create(ctx, &domain.Admin{Name: "Admin", Email: AdminEmail, PasswordHash: hash})
	if err != nil {
		return err
	}
	s.logger.Info("Seed: admin id=%d created (%s)", a.ID, AdminEmail)
	return nil
}

func (s *Seeder) customer(ctx context.Context) error {
	_, err := s.customers.GetByEmail(ctx, CustomerEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return err
	}
	hash, err := s.hasher.Hash(CustomerPassword)
	if err != nil {
		return err
	}
	c, err := s.customers.Create(ctx, &domain.Customer{Name: "Demo Customer", Email: CustomerEmail, PasswordHash: hash})
	if err != nil {
		return err
	}
	s.logger.Info("Seed: customer id=%d created (%s)", c.ID, CustomerEmail)
	return nil
}

// DemoServices the catalogue created on an empty database
func DemoServices() []domain.Service {
	return []domain.Service{
		{Name: "Consultation", PricePence: 2500, DurationMins: 30},
		{Name: "Haircut", PricePence: 3000, DurationMins: 45},
	}
}

func (s *Seeder) catalog(ctx context.Context) error {
	existing, err := s.services.List(ctx)
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, svc := range existing {
		names[svc.Name] = struct{}{}
	}
	for _, svc := range DemoServices() {
		if _, ok := names[svc.Name]; ok {
			continue
		}
		svc := svc
		created, err := s.services.Create(ctx, &svc)
		if err != nil {
			return err
		}
		s.logger.Info("Seed: service id=%d %q created", created.ID, created.Name)
	}
	return nil
}

// DemoSchedule Mon-Fri 09:00-17:00 with a lunch break, weekend closed
func DemoSchedule() *domain.WeeklySchedule {
	w := domain.ClosedWeek(domain.DefaultSlotStepMins)
	for d := time.Monday; d <= time.Friday; d++ {
		w.Days[d] = domain.DaySchedule{
			Enabled: true,
			Start:   "09:00",
			End:     "17:00",
			Breaks:  []domain.Break{{Start: "12:30", End: "13:00"}},
		}
	}
	return w
}

func (s *Seeder) weeklySchedule(ctx context.Context) error {
	_, err := s.schedule.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		return err
	}
	if _, err := s.schedule.Upsert(ctx, DemoSchedule()); err != nil {
		return err
	}
	s.logger.Info("Seed: weekly schedule created")
	return nil
}
