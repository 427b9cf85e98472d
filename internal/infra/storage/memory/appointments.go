package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

type AppointmentRepository struct {
	s *Store
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		if _, ok := st.customers[a.CustomerID]; !ok {
			return fmt.Errorf("%w: Create - unknown customer %d", appointment.ErrExecQuery, a.CustomerID)
		}
		if _, ok := st.services[a.ServiceID]; !ok {
			return fmt.Errorf("%w: Create - unknown service %d", appointment.ErrExecQuery, a.ServiceID)
		}
		if !a.EndAt.After(a.StartAt) {
			return fmt.Errorf("%w: Create - end must be after start", appointment.ErrExecQuery)
		}
		if a.IsActive() && startTaken(st, a.StartAt, 0) {
			return fmt.Errorf("%w: %s", appointment.ErrSlotTaken, a.StartAt.Format(time.RFC3339))
		}

		st.nextAppointmentID++
		a.ID = st.nextAppointmentID
		a.CreatedAt = now
		a.UpdatedAt = now
		stored := *a
		stored.CustomerName, stored.CustomerEmail, stored.ServiceName = "", "", ""
		st.appointments[a.ID] = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// startTaken mirrors the partial unique index on active start_at
func startTaken(st *state, start time.Time, exceptID int64) bool {
	for id, other := range st.appointments {
		if id != exceptID && other.IsActive() && other.StartAt.Equal(start) {
			return true
		}
	}
	return false
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var (
		result *domain.Appointment
		found  bool
	)
	r.s.read(func(st *state) {
		var a domain.Appointment
		a, found = st.appointments[id]
		if found {
			result = joined(st, a)
		}
	})
	if !found {
		return nil, appointment.ErrAppointmentNotFound
	}
	return result, nil
}

func (r *AppointmentRepository) ListOverlapping(ctx context.Context, interval domain.Interval) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	r.s.read(func(st *state) {
		for _, a := range st.appointments {
			if a.IsActive() && a.Interval().Overlaps(interval) {
				c := a
				result = append(result, &c)
			}
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	r.s.read(func(st *state) {
		for _, a := range st.appointments {
			if matches(a, filter) {
				result = append(result, joined(st, a))
			}
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func matches(a domain.Appointment, f domain.AppointmentFilter) bool {
	if f.CustomerID != nil && a.CustomerID != *f.CustomerID {
		return false
	}
	if f.From != nil && a.StartAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !a.StartAt.Before(*f.To) {
		return false
	}
	if f.Status != nil {
		return a.Status == *f.Status
	}
	return f.IncludeCancelled || a.IsActive()
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	return r.s.write(ctx, func(st *state, now time.Time) error {
		a, ok := st.appointments[id]
		if !ok {
			return appointment.ErrAppointmentNotFound
		}
		if status != domain.StatusCancelled && !a.IsActive() && startTaken(st, a.StartAt, id) {
			return appointment.ErrSlotTaken
		}
		a.Status = status
		a.UpdatedAt = now
		st.appointments[id] = a
		return nil
	})
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(st *state, _ time.Time) error {
		if _, ok := st.appointments[id]; !ok {
			return appointment.ErrAppointmentNotFound
		}
		delete(st.appointments, id)
		return nil
	})
}

func (r *AppointmentRepository) Count(ctx context.Context) (int, error) {
	n := 0
	r.s.read(func(st *state) {
		for _, a := range st.appointments {
			if a.IsActive() {
				n++
			}
		}
	})
	return n, nil
}

func (r *AppointmentRepository) CountByService(ctx context.Context) ([]domain.ServiceCount, error) {
	counts := make(map[int64]*domain.ServiceCount)
	r.s.read(func(st *state) {
		for _, a := range st.appointments {
			if !a.IsActive() {
				continue
			}
			svc, ok := st.services[a.ServiceID]
			if !ok {
				continue
			}
			c, ok := counts[svc.ID]
			if !ok {
				c = &domain.ServiceCount{ServiceID: svc.ID, ServiceName: svc.Name}
				counts[svc.ID] = c
			}
			c.Count++
		}
	})

	result := make([]domain.ServiceCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ServiceID < result[j].ServiceID })
	return result, nil
}

func joined(st *state, a domain.Appointment) *domain.Appointment {
	if c, ok := st.customers[a.CustomerID]; ok {
		a.CustomerName = c.Name
		a.CustomerEmail = c.Email
	}
	if svc, ok := st.services[a.ServiceID]; ok {
		a.ServiceName = svc.Name
	}
	return &a
}
