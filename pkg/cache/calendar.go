package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rentalspot/pkg/model"
)

const keyPrefix = "rentalspot:calendar:"

// ErrMiss is returned by Get when the month is not cached.
var ErrMiss = errors.New("calendar cache miss")

type CalendarCache interface {
	Get(ctx context.Context, calendarID string) (*model.PriceCalendar, error)
	Set(ctx context.Context, cal *model.PriceCalendar) error
	Invalidate(ctx context.Context, calendarIDs ...string) error
}

// New returns a Redis-backed cache, or a no-op cache when rdb is nil.
func New(rdb *redis.Client, ttl time.Duration) CalendarCache {
	if rdb == nil {
		return Noop{}
	}
	return &RedisCalendarCache{rdb: rdb, ttl: ttl}
}

type RedisCalendarCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func Key(calendarID string) string {
	return keyPrefix + calendarID
}

func (c *RedisCalendarCache) Get(ctx context.Context, calendarID string) (*model.PriceCalendar, error) {
	data, err := c.rdb.Get(ctx, Key(calendarID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", calendarID, err)
	}

	var cal model.PriceCalendar
	if err := json.Unmarshal(data, &cal); err != nil {
		// a corrupt entry is a miss; the next Set overwrites it
		return nil, ErrMiss
	}
	return &cal, nil
}

func (c *RedisCalendarCache) Set(ctx context.Context, cal *model.PriceCalendar) error {
	data, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("encode calendar %s: %w", cal.ID, err)
	}
	if err := c.rdb.Set(ctx, Key(cal.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", cal.ID, err)
	}
	return nil
}

func (c *RedisCalendarCache) Invalidate(ctx context.Context, calendarIDs ...string) error {
	if len(calendarIDs) == 0 {
		return nil
	}
	keys := make([]string, len(calendarIDs))
	for i, id := range calendarIDs {
		keys[i] = Key(id)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*model.PriceCalendar, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, *model.PriceCalendar) error          { return nil }
func (Noop) Invalidate(context.Context, ...string) error              { return nil }
