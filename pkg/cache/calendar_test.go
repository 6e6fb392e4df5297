package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"rentalspot/pkg/model"
)

func TestNew_NilClientIsNoop(t *testing.T) {
	c := New(nil, time.Hour)
	_, ok := c.(Noop)
	assert.True(t, ok)

	_, err := c.Get(context.Background(), "villa-azul_2025-07")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Set(context.Background(), &model.PriceCalendar{ID: "villa-azul_2025-07"}))
	assert.NoError(t, c.Invalidate(context.Background(), "villa-azul_2025-07"))
}

func TestNew_WithClient(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()

	c := New(rdb, time.Hour)
	_, ok := c.(*RedisCalendarCache)
	assert.True(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "rentalspot:calendar:villa-azul_2025-07", Key("villa-azul_2025-07"))
}

func TestRedisCalendarCache_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()
	c := New(rdb, time.Hour)

	_, err := c.Get(context.Background(), "villa-azul_2025-07")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
