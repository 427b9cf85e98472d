package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "slots:"
	scanBatch  = 100
	DefaultTTL = time.Minute
)

var (
	ErrDecode = errors.New("slots.cache: failed to decode cached slots")
	ErrRedis  = errors.New("slots.cache: redis error")
)

// Cache keeps resolved slot starts in one Redis hash per date,
// one field per service
type Cache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewCache(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func dateKey(date string) string {
	return keyPrefix + date
}

func field(serviceID int64) string {
	return strconv.FormatInt(serviceID, 10)
}

// Get reports ok=false on a miss
func (c *Cache) Get(ctx context.Context, date string, serviceID int64) ([]time.Time, bool, error) {
	raw, err := c.rdb.HGet(ctx, dateKey(date), field(serviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: HGET %s: %v", ErrRedis, dateKey(date), err)
	}
	starts, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return starts, true, nil
}

// Set stores the list and refreshes the TTL of the whole date
func (c *Cache) Set(ctx context.Context, date string, serviceID int64, starts []time.Time) error {
	raw, err := encode(starts)
	if err != nil {
		return err
	}
	key := dateKey(date)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field(serviceID), raw)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: HSET %s: %v", ErrRedis, key, err)
	}
	return nil
}

func (c *Cache) InvalidateDate(ctx context.Context, date string) error {
	if err := c.rdb.Del(ctx, dateKey(date)).Err(); err != nil {
		return fmt.Errorf("%w: DEL %s: %v", ErrRedis, dateKey(date), err)
	}
	return nil
}

// InvalidateAll drops every cached date
func (c *Cache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("%w: SCAN: %v", ErrRedis, err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: DEL: %v", ErrRedis, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func encode(starts []time.Time) ([]byte, error) {
	values := make([]string, len(starts))
	for i, s := range starts {
		values[i] = s.Format(time.RFC3339)
	}
	return json.Marshal(values)
}

func decode(raw []byte) ([]time.Time, error) {
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	starts := make([]time.Time, len(values))
	for i, v := range values {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		starts[i] = t
	}
	return starts, nil
}
