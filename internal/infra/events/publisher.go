package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Message headers
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

var ErrPublish = errors.New("events: publish failed")

// Writer the part of kafka.Writer the publisher needs
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes outbox events to one topic keyed by appointment id,
// so all events of an appointment land in one partition in order
type Publisher struct {
	writer Writer
}

// NewKafkaPublisher hash-balanced writer over brokers
func NewKafkaPublisher(brokers []string, topic string) *Publisher {
	return NewPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	})
}

func NewPublisher(writer Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes the batch in one call; the whole batch fails together
func (p *Publisher) Publish(ctx context.Context, batch []*domain.OutboxEvent) error {
	if len(batch) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(batch))
	for _, e := range batch {
		msgs = append(msgs, ToMessage(e))
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %d messages: %v", ErrPublish, len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// ToMessage maps an outbox record to a Kafka message
func ToMessage(e *domain.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(e.AggregateID, 10)),
		Value: e.Payload,
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(e.EventID)},
			{Key: HeaderEventType, Value: []byte(e.EventType)},
		},
	}
}
