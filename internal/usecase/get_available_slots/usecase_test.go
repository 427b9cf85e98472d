package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
)

type fakeAppointments struct {
	list  []*domain.Appointment
	err   error
	calls int
}

func (f *fakeAppointments) ListOverlapping(_ context.Context, window domain.Interval) ([]*domain.Appointment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Appointment
	for _, a := range f.list {
		if a.Interval().Overlaps(window) && a.IsActive() {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeServices struct {
	byID map[int64]*domain.Service
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeSchedule struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeSchedule) Get(context.Context) (*domain.WeeklySchedule, error) {
	if f.schedule == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return f.schedule, nil
}

type fakeCache struct {
	data   map[string][]time.Time
	getErr error
	sets   int
}

func (c *fakeCache) key(date string, serviceID int64) string {
	return fmt.Sprintf("%s/%d", date, serviceID)
}

func (c *fakeCache) Get(_ context.Context, date string, serviceID int64) ([]time.Time, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.data[c.key(date, serviceID)]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, date string, serviceID int64, slots []time.Time) error {
	c.sets++
	c.data[c.key(date, serviceID)] = slots
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weekWithMonday() *domain.WeeklySchedule {
	w := domain.ClosedWeek(15)
	w.Days[time.Monday] = workday()
	return w
}

func newTestUseCase(appts *fakeAppointments, sched *fakeSchedule, cache SlotCache, now time.Time) *UseCase {
	services := &fakeServices{byID: map[int64]*domain.Service{
		1: {ID: 1, Name: "Consultation", PricePence: 2500, DurationMins: 30},
	}}
	uc := NewUseCase(appts, services, sched, cache, nil, time.UTC, 15, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_ReturnsSlotsWithEnds(t *testing.T) {
	appts := &fakeAppointments{list: []*domain.Appointment{
		{StartAt: clock(10, 0), EndAt: clock(10, 45), Status: domain.StatusConfirmed},
		{StartAt: clock(11, 0), EndAt: clock(11, 30), Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(appts, &fakeSchedule{schedule: weekWithMonday()}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.DurationMins)
	assert.Equal(t, 15, resp.SlotStepMins)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, Slot{Start: clock(9, 0), End: clock(9, 30)}, resp.Slots[0])

	starts := make([]time.Time, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.Start)
	}
	assert.NotContains(t, starts, clock(10, 15))
	assert.Contains(t, starts, clock(10, 45))
	// cancelled appointment does not block
	assert.Contains(t, starts, clock(11, 0))
}

func TestExecute_DropsStartedSlots(t *testing.T) {
	uc := newTestUseCase(&fakeAppointments{}, &fakeSchedule{schedule: weekWithMonday()}, nil, clock(16, 10))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, clock(16, 15), resp.Slots[0].Start)
	assert.Equal(t, clock(16, 30), resp.Slots[1].Start)
}

func TestExecute_NoScheduleMeansClosed(t *testing.T) {
	appts := &fakeAppointments{}
	uc := newTestUseCase(appts, &fakeSchedule{}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, appts.calls)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointments{}, &fakeSchedule{schedule: weekWithMonday()}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(&fakeAppointments{}, &fakeSchedule{}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreFailure(t *testing.T) {
	appts := &fakeAppointments{err: errors.New("connection reset")}
	uc := newTestUseCase(appts, &fakeSchedule{schedule: weekWithMonday()}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_UsesCache(t *testing.T) {
	appts := &fakeAppointments{}
	cache := &fakeCache{data: map[string][]time.Time{}}
	uc := newTestUseCase(appts, &fakeSchedule{schedule: weekWithMonday()}, cache, monday.AddDate(0, 0, -1))

	first, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, appts.calls)
	assert.Equal(t, 1, cache.sets)
}

func TestExecute_CacheErrorFallsBack(t *testing.T) {
	appts := &fakeAppointments{}
	cache := &fakeCache{data: map[string][]time.Time{}, getErr: errors.New("redis down")}
	uc := newTestUseCase(appts, &fakeSchedule{schedule: weekWithMonday()}, cache, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Slots)
	assert.Equal(t, 1, appts.calls)
}
