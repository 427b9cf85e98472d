package outbox

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Repository unpublished outbox records
type Repository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []int64) error
}

// Publisher delivers a batch to the broker
type Publisher interface {
	Publish(ctx context.Context, batch []*domain.OutboxEvent) error
}

// TransactionManager holds the fetched rows locked until they are marked
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Metrics interface {
	IncOutbox(result string, n int)
}

type noopMetrics struct{}

func (noopMetrics) IncOutbox(string, int) {}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
