package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisDurationCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		mr, client := newTestRedis(t)
		cache := NewRedisDurationCache(client, time.Hour)

		_, ok, err := cache.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, cache.Set(ctx, "abc123", 3723))

		seconds, ok, err := cache.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3723, seconds)

		assert.True(t, mr.Exists("video_duration:abc123"))
		assert.Equal(t, time.Hour, mr.TTL("video_duration:abc123"))
	})

	t.Run("entries expire", func(t *testing.T) {
		mr, client := newTestRedis(t)
		cache := NewRedisDurationCache(client, time.Minute)

		require.NoError(t, cache.Set(ctx, "abc123", 45))
		mr.FastForward(2 * time.Minute)

		_, ok, err := cache.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-numeric value is an error", func(t *testing.T) {
		mr, client := newTestRedis(t)
		require.NoError(t, mr.Set("video_duration:abc123", "not-a-number"))

		_, ok, err := NewRedisDurationCache(client, time.Minute).Get(ctx, "abc123")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("server down", func(t *testing.T) {
		mr, client := newTestRedis(t)
		cache := NewRedisDurationCache(client, time.Minute)
		require.NoError(t, cache.Ping(ctx))

		mr.Close()

		_, _, err := cache.Get(ctx, "abc123")
		assert.Error(t, err)
		assert.Error(t, cache.Set(ctx, "abc123", 1))
	})
}

func TestDurationResolverWithRedisCache(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	cache := NewRedisDurationCache(client, time.Hour)

	fetcher := &mockFetcher{}
	fetcher.On("FetchDuration", ctx, "abc123").Return(253, nil).Once()

	r := NewDurationResolver(fetcher, nil, cache)
	assert.Equal(t, DurationResult{Seconds: 253}, r.Resolve(ctx, "abc123"))
	assert.Equal(t, DurationResult{Seconds: 253}, r.Resolve(ctx, "abc123"))

	fetcher.AssertNumberOfCalls(t, "FetchDuration", 1)
}
