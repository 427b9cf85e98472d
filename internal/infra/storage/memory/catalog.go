package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/admin"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
)

type ServiceRepository struct {
	s *Store
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		st.nextServiceID++
		svc.ID = st.nextServiceID
		svc.CreatedAt = now
		svc.UpdatedAt = now
		st.services[svc.ID] = *svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var (
		svc domain.Service
		ok  bool
	)
	r.s.read(func(st *state) { svc, ok = st.services[id] })
	if !ok {
		return nil, service.ErrServiceNotFound
	}
	return &svc, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0)
	r.s.read(func(st *state) {
		for _, svc := range st.services {
			c := svc
			result = append(result, &c)
		}
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		old, ok := st.services[svc.ID]
		if !ok {
			return service.ErrServiceNotFound
		}
		svc.CreatedAt = old.CreatedAt
		svc.UpdatedAt = now
		st.services[svc.ID] = *svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(st *state, _ time.Time) error {
		if _, ok := st.services[id]; !ok {
			return service.ErrServiceNotFound
		}
		for _, a := range st.appointments {
			if a.ServiceID == id {
				return service.ErrServiceInUse
			}
		}
		delete(st.services, id)
		return nil
	})
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	n := 0
	r.s.read(func(st *state) { n = len(st.services) })
	return n, nil
}

type CustomerRepository struct {
	s *Store
}

func emailTaken(st *state, email string, exceptID int64) bool {
	for id, c := range st.customers {
		if id != exceptID && c.Email == email {
			return true
		}
	}
	return false
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		if emailTaken(st, c.Email, 0) {
			return customer.ErrEmailTaken
		}
		st.nextCustomerID++
		c.ID = st.nextCustomerID
		c.CreatedAt = now
		c.UpdatedAt = now
		st.customers[c.ID] = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var (
		c  domain.Customer
		ok bool
	)
	r.s.read(func(st *state) { c, ok = st.customers[id] })
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var found *domain.Customer
	r.s.read(func(st *state) {
		for _, c := range st.customers {
			if c.Email == email {
				cc := c
				found = &cc
				return
			}
		}
	})
	if found == nil {
		return nil, customer.ErrCustomerNotFound
	}
	return found, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0)
	r.s.read(func(st *state) {
		for _, c := range st.customers {
			cc := c
			result = append(result, &cc)
		}
	})
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		old, ok := st.customers[c.ID]
		if !ok {
			return customer.ErrCustomerNotFound
		}
		if emailTaken(st, c.Email, c.ID) {
			return customer.ErrEmailTaken
		}
		c.CreatedAt = old.CreatedAt
		c.UpdatedAt = now
		st.customers[c.ID] = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(st *state, _ time.Time) error {
		if _, ok := st.customers[id]; !ok {
			return customer.ErrCustomerNotFound
		}
		for _, a := range st.appointments {
			if a.CustomerID == id {
				return customer.ErrCustomerHasAppointments
			}
		}
		delete(st.customers, id)
		return nil
	})
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	n := 0
	r.s.read(func(st *state) { n = len(st.customers) })
	return n, nil
}

type AdminRepository struct {
	s *Store
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		for _, other := range st.admins {
			if other.Email == a.Email {
				return admin.ErrEmailTaken
			}
		}
		st.nextAdminID++
		a.ID = st.nextAdminID
		a.CreatedAt = now
		st.admins[a.ID] = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	var (
		a  domain.Admin
		ok bool
	)
	r.s.read(func(st *state) { a, ok = st.admins[id] })
	if !ok {
		return nil, admin.ErrAdminNotFound
	}
	return &a, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var found *domain.Admin
	r.s.read(func(st *state) {
		for _, a := range st.admins {
			if a.Email == email {
				aa := a
				found = &aa
				return
			}
		}
	})
	if found == nil {
		return nil, admin.ErrAdminNotFound
	}
	return found, nil
}

type ScheduleRepository struct {
	s *Store
}

func (r *ScheduleRepository) Get(ctx context.Context) (*domain.WeeklySchedule, error) {
	var result *domain.WeeklySchedule
	r.s.read(func(st *state) {
		if st.schedule != nil {
			c := cloneSchedule(*st.schedule)
			result = &c
		}
	})
	if result == nil {
		return nil, schedule.ErrScheduleNotFound
	}
	return result, nil
}

func (r *ScheduleRepository) Upsert(ctx context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	err := r.s.write(ctx, func(st *state, now time.Time) error {
		w.ID = domain.ScheduleID
		w.UpdatedAt = now
		c := cloneSchedule(*w)
		st.schedule = &c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}
