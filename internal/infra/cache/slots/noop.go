package slots

import (
	"context"
	"time"
)

// Noop is used when Redis is disabled: every read misses
type Noop struct{}

func (Noop) Get(context.Context, string, int64) ([]time.Time, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, int64, []time.Time) error { return nil }

func (Noop) InvalidateDate(context.Context, string) error { return nil }

func (Noop) InvalidateAll(context.Context) error { return nil }
