package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type OutboxRepository struct {
	s *Store
}

func (r *OutboxRepository) Insert(ctx context.Context, e *domain.OutboxEvent) error {
	return r.s.write(ctx, func(st *state, now time.Time) error {
		st.nextOutboxID++
		e.ID = st.nextOutboxID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		c := *e
		c.Payload = append([]byte(nil), e.Payload...)
		st.outbox = append(st.outbox, c)
		return nil
	})
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	result := make([]*domain.OutboxEvent, 0, limit)
	r.s.read(func(st *state) {
		for _, e := range st.outbox {
			if len(result) >= limit {
				return
			}
			if e.PublishedAt == nil {
				c := e
				result = append(result, &c)
			}
		}
	})
	return result, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return r.s.write(ctx, func(st *state, now time.Time) error {
		for i := range st.outbox {
			if _, ok := set[st.outbox[i].ID]; ok && st.outbox[i].PublishedAt == nil {
				ts := now
				st.outbox[i].PublishedAt = &ts
			}
		}
		return nil
	})
}
