// Package memory keeps every repository in process memory.
// It backs tests and the storage.driver = "memory" mode.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type state struct {
	appointments map[int64]domain.Appointment
	services     map[int64]domain.Service
	customers    map[int64]domain.Customer
	admins       map[int64]domain.Admin
	schedule     *domain.WeeklySchedule
	outbox       []domain.OutboxEvent

	nextAppointmentID int64
	nextServiceID     int64
	nextCustomerID    int64
	nextAdminID       int64
	nextOutboxID      int64
}

func newState() state {
	return state{
		appointments: make(map[int64]domain.Appointment),
		services:     make(map[int64]domain.Service),
		customers:    make(map[int64]domain.Customer),
		admins:       make(map[int64]domain.Admin),
	}
}

func (s state) clone() state {
	c := s
	c.appointments = make(map[int64]domain.Appointment, len(s.appointments))
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	c.services = make(map[int64]domain.Service, len(s.services))
	for k, v := range s.services {
		c.services[k] = v
	}
	c.customers = make(map[int64]domain.Customer, len(s.customers))
	for k, v := range s.customers {
		c.customers[k] = v
	}
	c.admins = make(map[int64]domain.Admin, len(s.admins))
	for k, v := range s.admins {
		c.admins[k] = v
	}
	if s.schedule != nil {
		sc := cloneSchedule(*s.schedule)
		c.schedule = &sc
	}
	c.outbox = append([]domain.OutboxEvent(nil), s.outbox...)
	return c
}

func cloneSchedule(w domain.WeeklySchedule) domain.WeeklySchedule {
	for i := range w.Days {
		w.Days[i].Breaks = append([]domain.Break(nil), w.Days[i].Breaks...)
	}
	return w
}

// Store in-memory database.
// Writes outside a transaction take txMu so a rollback never discards them.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(bool)
	return ok
}

func (s *Store) write(ctx context.Context, fn func(st *state, now time.Time) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.st, s.now().UTC())
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.st)
}

func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }
func (s *Store) Services() *ServiceRepository         { return &ServiceRepository{s: s} }
func (s *Store) Customers() *CustomerRepository       { return &CustomerRepository{s: s} }
func (s *Store) Admins() *AdminRepository             { return &AdminRepository{s: s} }
func (s *Store) Schedule() *ScheduleRepository        { return &ScheduleRepository{s: s} }
func (s *Store) Outbox() *OutboxRepository            { return &OutboxRepository{s: s} }
func (s *Store) TxManager() *TxManager                { return &TxManager{s: s} }
