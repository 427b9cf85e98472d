package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePublisher struct {
	mu      sync.Mutex
	batches [][]*domain.OutboxEvent
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, batch []*domain.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, batch)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.batches {
		n += len(b)
	}
	return n
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncOutbox(result string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[result] += n
}

func seedEvents(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, store.Outbox().Insert(context.Background(), &domain.OutboxEvent{
			EventID:     "e-" + string(rune('a'+i)),
			AggregateID: int64(i + 1),
			EventType:   domain.EventAppointmentCreated,
			Payload:     []byte(`{}`),
			CreatedAt:   time.Now(),
		}))
	}
}

func TestRunOnce_PublishesInBatches(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 5)
	pub := &fakePublisher{}
	m := &countingMetrics{}
	relay := NewRelay(store.Outbox(), pub, store.TxManager(), m, nopLogger{}, time.Second, 3)

	n, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.Len(t, pub.batches, 2)
	assert.Equal(t, "e-a", pub.batches[0][0].EventID)
	assert.Equal(t, 5, m.counts[metrics.OutboxPublished])
}

func TestRunOnce_PublishFailureKeepsRecords(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 2)
	pub := &fakePublisher{err: errors.New("broker down")}
	m := &countingMetrics{}
	relay := NewRelay(store.Outbox(), pub, store.TxManager(), m, nopLogger{}, time.Second, 10)

	_, err := relay.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrRelay)
	assert.Equal(t, 2, m.counts[metrics.OutboxFailed])

	pending, err := store.Outbox().FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	pub.err = nil
	n, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 4)
	pub := &fakePublisher{}
	relay := NewRelay(store.Outbox(), pub, store.TxManager(), nil, nopLogger{}, 10*time.Millisecond, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return pub.count() == 4 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
