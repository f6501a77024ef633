package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const durationKeyPrefix = "video_duration:"

// RedisDurationCache keeps resolved video durations in Redis so repeated
// submissions of the same video by different users skip the metadata API.
type RedisDurationCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisDurationCache creates a new RedisDurationCache. A non-positive ttl
// stores keys without expiry.
func NewRedisDurationCache(redisClient *redis.Client, ttl time.Duration) *RedisDurationCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisDurationCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func durationKey(videoID string) string {
	return durationKeyPrefix + videoID
}

// Get returns the cached duration and whether it was present.
func (c *RedisDurationCache) Get(ctx context.Context, videoID string) (int, bool, error) {
	seconds, err := c.redisClient.Get(ctx, durationKey(videoID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read cached duration: %w", err)
	}
	return seconds, true, nil
}

// Set caches a duration.
func (c *RedisDurationCache) Set(ctx context.Context, videoID string, seconds int) error {
	if err := c.redisClient.Set(ctx, durationKey(videoID), seconds, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache duration: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisDurationCache) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}
