package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("evt-%d", s.n)
}

type recordingInvalidator struct {
	mu    sync.Mutex
	dates []string
	err   error
}

func (r *recordingInvalidator) InvalidateDate(_ context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates = append(r.dates, date)
	return r.err
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncBooking(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[result]++
}

var (
	day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // Monday
	now = day.Add(-24 * time.Hour)
)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type fixture struct {
	store       *memory.Store
	uc          *UseCase
	customer    *domain.Customer
	haircut     *domain.Service // 45 minutes
	consult     *domain.Service // 30 minutes
	invalidator *recordingInvalidator
	metrics     *countingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	c, err := store.Customers().Create(ctx, &domain.Customer{Name: "Demo", Email: "demo@customer.com", PasswordHash: "x"})
	require.NoError(t, err)
	haircut, err := store.Services().Create(ctx, &domain.Service{Name: "Haircut", PricePence: 3000, DurationMins: 45})
	require.NoError(t, err)
	consult, err := store.Services().Create(ctx, &domain.Service{Name: "Consultation", PricePence: 2500, DurationMins: 30})
	require.NoError(t, err)

	inv := &recordingInvalidator{}
	m := &countingMetrics{}
	uc := NewUseCase(store.Appointments(), store.Services(), store.Outbox(), store.TxManager(), inv, m, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	uc.idGenerator = &seqIDs{}

	return &fixture{store: store, uc: uc, customer: c, haircut: haircut, consult: consult, invalidator: inv, metrics: m}
}

func (f *fixture) book(svc *domain.Service, start time.Time) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{CustomerID: f.customer.ID, ServiceID: svc.ID, StartAt: start})
}

func TestExecute_CreatesConfirmedAppointment(t *testing.T) {
	f := newFixture(t)

	resp, err := f.book(f.consult, at(10, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, at(10, 0), resp.StartAt)
	assert.Equal(t, at(10, 30), resp.EndAt, "end is start plus the service duration")
	assert.Equal(t, "Consultation", resp.ServiceName)

	events, err := f.store.Outbox().FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventAppointmentCreated, events[0].EventType)
	assert.Equal(t, resp.ID, events[0].AggregateID)
	assert.Equal(t, "evt-1", events[0].EventID)

	assert.Equal(t, []string{"2025-03-03"}, f.invalidator.dates)
	assert.Equal(t, 1, f.metrics.counts["created"])
}

func TestExecute_ScenarioB(t *testing.T) {
	f := newFixture(t)
	_, err := f.book(f.haircut, at(10, 0)) // 10:00-10:45
	require.NoError(t, err)

	_, err = f.book(f.consult, at(10, 15))
	assert.ErrorIs(t, err, ErrSlotConflict, "10:15-10:45 intersects 10:00-10:45")

	resp, err := f.book(f.consult, at(10, 45))
	require.NoError(t, err, "adjacent half-open intervals do not overlap")
	assert.Equal(t, at(11, 15), resp.EndAt)

	assert.Equal(t, 1, f.metrics.counts["conflict"])
}

func TestExecute_PartialOverlapWithDifferentStart(t *testing.T) {
	f := newFixture(t)
	_, err := f.book(f.consult, at(10, 10)) // 10:10-10:40
	require.NoError(t, err)

	_, err = f.book(f.haircut, at(10, 0)) // 10:00-10:45
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	first, err := f.book(f.consult, at(10, 0))
	require.NoError(t, err)
	require.NoError(t, f.store.Appointments().UpdateStatus(context.Background(), first.ID, domain.StatusCancelled))

	second, err := f.book(f.consult, at(10, 0))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExecute_ScenarioC_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		errs      = make([]error, attempts)
		successes = make([]*Response, attempts)
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			successes[i], errs[i] = f.book(f.consult, at(14, 0))
		}(i)
	}
	close(start)
	wg.Wait()

	created := 0
	for i := range errs {
		if errs[i] == nil {
			created++
			assert.Equal(t, domain.StatusConfirmed, successes[i].Status)
			continue
		}
		assert.ErrorIs(t, errs[i], ErrSlotConflict)
	}
	assert.Equal(t, 1, created)

	inSlot, err := f.store.Appointments().ListOverlapping(context.Background(), domain.Interval{Start: at(14, 0), End: at(14, 30)})
	require.NoError(t, err)
	assert.Len(t, inSlot, 1)
}

func TestExecute_ConcurrentOverlappingNeverBothAccepted(t *testing.T) {
	f := newFixture(t)

	starts := []time.Time{at(9, 0), at(9, 15), at(9, 30), at(9, 45), at(10, 0), at(10, 15)}
	var wg sync.WaitGroup
	for _, s := range starts {
		wg.Add(1)
		go func(s time.Time) {
			defer wg.Done()
			_, _ = f.book(f.haircut, s)
		}(s)
	}
	wg.Wait()

	all, err := f.store.Appointments().List(context.Background(), domain.AppointmentFilter{})
	require.NoError(t, err)
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			assert.False(t, all[i].Interval().Overlaps(all[j].Interval()),
				"appointments %d and %d overlap", all[i].ID, all[j].ID)
		}
	}
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		req  *Request
	}{
		{"nil", nil},
		{"no customer", &Request{ServiceID: f.consult.ID, StartAt: at(10, 0)}},
		{"no service", &Request{CustomerID: f.customer.ID, StartAt: at(10, 0)}},
		{"no start", &Request{CustomerID: f.customer.ID, ServiceID: f.consult.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ZeroDurationService(t *testing.T) {
	f := newFixture(t)
	broken, err := f.store.Services().Create(context.Background(), &domain.Service{Name: "Broken", DurationMins: 0})
	require.NoError(t, err)

	_, err = f.book(broken, at(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Execute(context.Background(), &Request{CustomerID: f.customer.ID, ServiceID: 999, StartAt: at(10, 0)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)
	_, err := f.book(f.consult, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_InvalidationFailureIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.invalidator.err = errors.New("redis down")

	_, err := f.book(f.consult, at(10, 0))
	assert.NoError(t, err)
}

// fakes for store failure paths

type fakeAppointments struct {
	listErr   error
	createErr error
}

func (f *fakeAppointments) ListOverlapping(context.Context, domain.Interval) ([]*domain.Appointment, error) {
	return nil, f.listErr
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = 1
	return a, nil
}

type fakeServices struct{}

func (fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	return &domain.Service{ID: id, Name: "Consultation", DurationMins: 30}, nil
}

type fakeOutbox struct{ err error }

func (f fakeOutbox) Insert(context.Context, *domain.OutboxEvent) error { return f.err }

type passthroughTx struct{ commitErr error }

func (p passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return p.commitErr
}

func newFakeUseCase(appts *fakeAppointments, outbox fakeOutbox, tx passthroughTx) *UseCase {
	uc := NewUseCase(appts, fakeServices{}, outbox, tx, nil, nil, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_ErrorMapping(t *testing.T) {
	req := &Request{CustomerID: 1, ServiceID: 1, StartAt: at(10, 0)}
	serialization := &pq.Error{Code: "40001"}

	cases := []struct {
		name   string
		appts  *fakeAppointments
		outbox fakeOutbox
		tx     passthroughTx
		want   error
	}{
		{"unique index hit", &fakeAppointments{createErr: fmt.Errorf("%w: x", appointmentRepo.ErrSlotTaken)}, fakeOutbox{}, passthroughTx{}, ErrSlotConflict},
		{"serialization during scan", &fakeAppointments{listErr: fmt.Errorf("%w: x", appointmentRepo.ErrSerializationFailure)}, fakeOutbox{}, passthroughTx{}, ErrSlotConflict},
		{"serialization at commit", &fakeAppointments{}, fakeOutbox{}, passthroughTx{commitErr: fmt.Errorf("%w: %w", txmanager.ErrCommit, serialization)}, ErrSlotConflict},
		{"store down", &fakeAppointments{listErr: errors.New("connection refused")}, fakeOutbox{}, passthroughTx{}, ErrInternal},
		{"outbox insert fails", &fakeAppointments{}, fakeOutbox{err: errors.New("disk full")}, passthroughTx{}, ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newFakeUseCase(tc.appts, tc.outbox, tc.tx).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
