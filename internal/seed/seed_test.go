package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func newSeeder(store *memory.Store) *Seeder {
	return NewSeeder(store.Admins(), store.Customers(), store.Services(), store.Schedule(), plainHasher{}, nopLogger{})
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, newSeeder(store).Run(ctx))
	require.NoError(t, newSeeder(store).Run(ctx))

	admin, err := store.Admins().GetByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, "hashed:"+AdminPassword, admin.PasswordHash)

	customer, err := store.Customers().GetByEmail(ctx, CustomerEmail)
	require.NoError(t, err)
	assert.Equal(t, "hashed:"+CustomerPassword, customer.PasswordHash)

	services, err := store.Services().List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Consultation", services[0].Name)
	assert.EqualValues(t, 2500, services[0].PricePence)
	assert.Equal(t, 45, services[1].DurationMins)

	n, err := store.Customers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRun_KeepsExistingSchedule(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	custom := DemoSchedule()
	custom.SlotStepMins = 20
	_, err := store.Schedule().Upsert(ctx, custom)
	require.NoError(t, err)

	require.NoError(t, newSeeder(store).Run(ctx))

	w, err := store.Schedule().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, w.SlotStepMins)
}

func TestDemoSchedule(t *testing.T) {
	w := DemoSchedule()
	assert.Equal(t, 15, w.SlotStepMins)
	assert.False(t, w.Days[time.Saturday].Enabled)
	assert.False(t, w.Days[time.Sunday].Enabled)

	mon := w.Days[time.Monday]
	assert.True(t, mon.Enabled)
	assert.Equal(t, types.TimeString("09:00"), mon.Start)
	assert.Equal(t, types.TimeString("17:00"), mon.End)
	require.Len(t, mon.Breaks, 1)
	assert.Equal(t, types.TimeString("12:30"), mon.Breaks[0].Start)
}
