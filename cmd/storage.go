package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	adminRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/admin"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	outboxRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/outbox"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/seed"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/auth"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/dashboard"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	outboxWorker "github.com/m04kA/SMC-AppointmentService/internal/worker/outbox"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/password"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type appointmentRepository interface {
	create_appointment.AppointmentRepository
	appointments.AppointmentRepository
	dashboard.AppointmentRepository
}

type customerRepository interface {
	customers.CustomerRepository
	auth.CustomerRepository
	dashboard.CustomerRepository
}

type adminRepository interface {
	auth.AdminRepository
	seed.AdminRepository
}

type outboxRepository interface {
	create_appointment.OutboxRepository
	outboxWorker.Repository
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage repositories of the selected driver
type storage struct {
	appointments appointmentRepository
	services     catalog.ServiceRepository
	customers    customerRepository
	admins       adminRepository
	schedule     schedule.ScheduleRepository
	outbox       outboxRepository
	txManager    transactionManager

	// pinger is nil for the memory driver
	pinger health.Pinger
	close  func() error
}

// openStorage builds the repositories for cfg.Storage.Driver.
// stopCh stops the pool stats collector.
func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logger.Logger, stopCh <-chan struct{}) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return openMemory(ctx, cfg, log)
	}

	db, err := openPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	st := &storage{pinger: db, close: db.Close}

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)
		log.Info("Database metrics collection started")

		st.appointments = appointmentRepo.NewRepository(wrappedDB)
		st.services = serviceRepo.NewRepository(wrappedDB)
		st.customers = customerRepo.NewRepository(wrappedDB)
		st.admins = adminRepo.NewRepository(wrappedDB)
		st.schedule = scheduleRepo.NewRepository(wrappedDB)
		st.outbox = outboxRepo.NewRepository(wrappedDB)
		st.txManager = txmanager.NewTransactionManager(wrappedDB)
		return st, nil
	}

	st.appointments = appointmentRepo.NewRepository(db)
	st.services = serviceRepo.NewRepository(db)
	st.customers = customerRepo.NewRepository(db)
	st.admins = adminRepo.NewRepository(db)
	st.schedule = scheduleRepo.NewRepository(db)
	st.outbox = outboxRepo.NewRepository(db)
	st.txManager = simpletxmanager.NewTransactionManager(db)
	return st, nil
}

func openMemory(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()
	log.Info("Using in-memory storage, data is lost on restart")

	if cfg.Storage.SeedOnStart {
		seeder := seed.NewSeeder(store.Admins(), store.Customers(), store.Services(), store.Schedule(), password.Bcrypt{}, log)
		if err := seeder.Run(ctx); err != nil {
			return nil, err
		}
	}

	return &storage{
		appointments: store.Appointments(),
		services:     store.Services(),
		customers:    store.Customers(),
		admins:       store.Admins(),
		schedule:     store.Schedule(),
		outbox:       store.Outbox(),
		txManager:    store.TxManager(),
		close:        func() error { return nil },
	}, nil
}

func openPostgres(ctx context.Context, cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
