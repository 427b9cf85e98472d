package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublish(t *testing.T) {
	w := &recordingWriter{}
	p := NewPublisher(w)
	created := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), []*domain.OutboxEvent{
		{ID: 1, EventID: "e-1", AggregateID: 7, EventType: domain.EventAppointmentCreated, Payload: []byte(`{"a":1}`), CreatedAt: created},
		{ID: 2, EventID: "e-2", AggregateID: 7, EventType: domain.EventAppointmentCancelled, Payload: []byte(`{"a":2}`), CreatedAt: created},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	msg := w.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, `{"a":1}`, string(msg.Value))
	assert.Equal(t, created, msg.Time)
	assert.Equal(t, []kafka.Header{
		{Key: HeaderEventID, Value: []byte("e-1")},
		{Key: HeaderEventType, Value: []byte(domain.EventAppointmentCreated)},
	}, msg.Headers)
	assert.Equal(t, "appointment.cancelled", string(w.msgs[1].Headers[1].Value))
}

func TestPublish_EmptyBatch(t *testing.T) {
	w := &recordingWriter{err: errors.New("must not be called")}
	assert.NoError(t, NewPublisher(w).Publish(context.Background(), nil))
}

func TestPublish_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	err := NewPublisher(w).Publish(context.Background(), []*domain.OutboxEvent{{EventID: "e"}})
	assert.ErrorIs(t, err, ErrPublish)
}
