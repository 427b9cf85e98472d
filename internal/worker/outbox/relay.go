package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultBatchSize    = 50
)

var ErrRelay = errors.New("outbox.relay: batch failed")

// Relay moves outbox records to the broker. A record is marked only after
// a successful publish, so delivery is at least once.
type Relay struct {
	repo      Repository
	publisher Publisher
	txManager TransactionManager
	metrics   Metrics
	logger    Logger

	pollInterval time.Duration
	batchSize    int
}

// NewRelay metrics may be nil
func NewRelay(
	repo Repository,
	publisher Publisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	pollInterval time.Duration,
	batchSize int,
) *Relay {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Relay{
		repo:         repo,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Run polls until ctx is cancelled
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("OutboxRelay: started, poll every %s, batch %d", r.pollInterval, r.batchSize)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("OutboxRelay: stopped")
			return
		case <-ticker.C:
			// drain a backlog without waiting for the next tick
			for {
				n, err := r.RunOnce(ctx)
				if err != nil {
					r.logger.Error("OutboxRelay: %v", err)
					break
				}
				if n < r.batchSize || ctx.Err() != nil {
					break
				}
			}
		}
	}
}

// RunOnce relays at most one batch and returns how many records were published
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		batch, err := r.repo.FetchUnpublished(ctx, r.batchSize)
		if err != nil {
			return fmt.Errorf("fetch: %v", err)
		}
		if len(batch) == 0 {
			return nil
		}

		if err := r.publisher.Publish(ctx, batch); err != nil {
			r.metrics.IncOutbox(metrics.OutboxFailed, len(batch))
			return fmt.Errorf("publish: %v", err)
		}

		ids := make([]int64, len(batch))
		for i, e := range batch {
			ids[i] = e.ID
		}
		if err := r.repo.MarkPublished(ctx, ids); err != nil {
			return fmt.Errorf("mark published: %v", err)
		}
		published = len(batch)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRelay, err)
	}
	if published > 0 {
		r.metrics.IncOutbox(metrics.OutboxPublished, published)
		r.logger.Info("OutboxRelay: published %d events", published)
	}
	return published, nil
}
