package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	authHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/auth"
	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	customersHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/customers"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getDashboardHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_dashboard"
	getMyAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_my_appointments"
	healthHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_appointments"
	servicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/services"
	updateAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	slotsCache "github.com/m04kA/SMC-AppointmentService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	authService "github.com/m04kA/SMC-AppointmentService/internal/service/auth"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	customersService "github.com/m04kA/SMC-AppointmentService/internal/service/customers"
	dashboardService "github.com/m04kA/SMC-AppointmentService/internal/service/dashboard"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	outboxWorker "github.com/m04kA/SMC-AppointmentService/internal/worker/outbox"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/password"
	"github.com/m04kA/SMC-AppointmentService/pkg/token"
	"github.com/m04kA/SMC-AppointmentService/pkg/tracing"
)

const defaultConfigPath = "config.toml"

// slotCache resolver reads plus invalidation by the mutating services
type slotCache interface {
	getAvailableSlotsUC.SlotCache
	createAppointmentUC.SlotInvalidator
	catalogService.SlotInvalidator
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	store, err := openStorage(ctx, cfg, metricsCollector, log, stopMetricsCh)
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	defer store.close()

	var cache slotCache = slotsCache.Noop{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the resolver falls back to the store on every cache error
			log.Warn("Redis is unreachable at %s: %v", cfg.Redis.Addr, err)
		}
		cache = slotsCache.NewCache(rdb, cfg.Redis.SlotsTTL())
		log.Info("Slot cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.SlotsTTL())
	}

	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	hasher := password.Bcrypt{}

	// Services
	catalogSvc := catalogService.NewService(store.services, cache, log)
	scheduleSvc := scheduleService.NewService(store.schedule, cache, cfg.Booking.DefaultSlotStepMins, log)
	customersSvc := customersService.NewService(store.customers, hasher, log)
	authSvc := authService.NewService(store.admins, store.customers, customersSvc, issuer, hasher, log)
	appointmentsSvc := appointmentsService.NewService(store.appointments, store.outbox, store.txManager, cache, location, log)
	dashboardSvc := dashboardService.NewService(store.appointments, store.customers, location, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		store.services,
		store.outbox,
		store.txManager,
		cache,
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.appointments,
		store.services,
		store.schedule,
		cache,
		metricsCollector,
		location,
		cfg.Booking.DefaultSlotStepMins,
		log,
	)

	// Outbox relay
	if cfg.Kafka.Enabled {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()

		relay := outboxWorker.NewRelay(
			store.outbox,
			publisher,
			store.txManager,
			metricsCollector,
			log,
			cfg.Kafka.PollInterval(),
			cfg.Kafka.BatchSize,
		)
		go relay.Run(ctx)
		log.Info("Outbox relay started (topic=%s, brokers=%v)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// Handlers
	health := healthHandler.NewHandler(store.pinger, cfg.Storage.Driver, log)
	authH := authHandler.NewHandler(authSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	customers := customersHandler.NewHandler(customersSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(scheduleSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(scheduleSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDashboard := getDashboardHandler.NewHandler(dashboardSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", services.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId:[0-9]+}", services.Get).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	signIn := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		signIn.Use(limiter.Middleware)
		log.Info("Rate limit on sign-in routes: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	signIn.HandleFunc("/admin/login", authH.AdminLogin).Methods(http.MethodPost)
	signIn.HandleFunc("/customer/register", authH.CustomerRegister).Methods(http.MethodPost)
	signIn.HandleFunc("/customer/login", authH.CustomerLogin).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	authenticated := api.PathPrefix("").Subrouter()
	authenticated.Use(middleware.Auth(issuer, log))

	anyone := authenticated.PathPrefix("").Subrouter()
	anyone.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleCustomer))
	anyone.HandleFunc("/auth/me", authH.Me).Methods(http.MethodGet)
	// ownership is checked by the appointments service
	anyone.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	anyone.HandleFunc("/appointments/{appointmentId:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	customer := authenticated.PathPrefix("").Subrouter()
	customer.Use(middleware.RequireRole(domain.RoleCustomer))
	customer.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	customer.HandleFunc("/appointments/mine", getMyAppointments.Handle).Methods(http.MethodGet)

	admin := authenticated.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/services", services.Create).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", services.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/services/{serviceId:[0-9]+}", services.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/availability", updateAvailability.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/customers", customers.List).Methods(http.MethodGet)
	admin.HandleFunc("/customers", customers.Create).Methods(http.MethodPost)
	admin.HandleFunc("/customers/{customerId:[0-9]+}", customers.Get).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId:[0-9]+}", customers.Update).Methods(http.MethodPut)
	admin.HandleFunc("/customers/{customerId:[0-9]+}", customers.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	var handler http.Handler = r
	if cfg.Tracing.Enabled {
		handler = otelhttp.NewHandler(r, cfg.Metrics.ServiceName)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s (storage=%s, timezone=%s)", addr, cfg.Storage.Driver, location)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// stops the outbox relay
	stop()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
