package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/customers/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Customers(), plainHasher{}, nopLogger{}), store
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	svc, store := newService()

	c, err := svc.Register(context.Background(), " Demo ", " Demo@Customer.com ", "", "customer123")
	require.NoError(t, err)
	assert.Equal(t, "Demo", c.Name)
	assert.Equal(t, "demo@customer.com", c.Email)

	stored, err := store.Customers().GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:customer123", stored.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Demo", "demo@customer.com", "", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	_, err = svc.Register(ctx, "", "demo@customer.com", "", "customer123")
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.Register(ctx, "Demo", "nope", "", "customer123")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Demo", "demo@customer.com", "", "customer123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other", "DEMO@customer.com", "", "customer123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, &models.CreateCustomerRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateCustomerRequest{Name: "B", Email: "b@x.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, &models.UpdateCustomerRequest{Phone: ptr.Ptr(" 0123 ")})
	require.NoError(t, err)
	assert.Equal(t, "0123", updated.Phone)
	assert.Equal(t, "A", updated.Name)

	_, err = svc.Update(ctx, a.ID, &models.UpdateCustomerRequest{Email: ptr.Ptr("b@x.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Update(ctx, 999, &models.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestDelete_RefusedWithAppointments(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	c, err := svc.Create(ctx, &models.CreateCustomerRequest{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	service, err := store.Services().Create(ctx, &domain.Service{Name: "Haircut", DurationMins: 45})
	require.NoError(t, err)
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	_, err = store.Appointments().Create(ctx, &domain.Appointment{
		CustomerID: c.ID, ServiceID: service.ID, StartAt: start, EndAt: start.Add(45 * time.Minute), Status: domain.StatusCancelled,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID), ErrCustomerHasAppointments)
	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrCustomerNotFound)
}
