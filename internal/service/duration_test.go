package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ad-tracker/ytsummary-go/internal/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchDuration(ctx context.Context, videoID string) (int, error) {
	args := m.Called(ctx, videoID)
	return args.Int(0), args.Error(1)
}

type mockQuota struct {
	mock.Mock
}

func (m *mockQuota) CheckQuotaAvailable(ctx context.Context, requiredQuota int) (bool, error) {
	args := m.Called(ctx, requiredQuota)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuota) RecordQuotaUsage(ctx context.Context, quotaCost int, operationType string) error {
	return m.Called(ctx, quotaCost, operationType).Error(0)
}

type mapCache struct {
	values map[string]int
	getErr error
	sets   int
}

func (c *mapCache) Get(_ context.Context, videoID string) (int, bool, error) {
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	v, ok := c.values[videoID]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, videoID string, seconds int) error {
	c.sets++
	c.values[videoID] = seconds
	return nil
}

func TestDurationResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id skips lookup", func(t *testing.T) {
		fetcher := &mockFetcher{}
		r := NewDurationResolver(fetcher, nil, nil)

		got := r.Resolve(ctx, "")

		assert.Equal(t, DurationResult{}, got)
		fetcher.AssertNotCalled(t, "FetchDuration", mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		fetcher := &mockFetcher{}
		fetcher.On("FetchDuration", ctx, "abc123").Return(3723, nil)

		got := NewDurationResolver(fetcher, nil, nil).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Seconds: 3723}, got)
		fetcher.AssertExpectations(t)
	})

	t.Run("fetch failure degrades to zero", func(t *testing.T) {
		fetcher := &mockFetcher{}
		fetcher.On("FetchDuration", ctx, "abc123").Return(0, errors.New("403 forbidden"))

		got := NewDurationResolver(fetcher, nil, nil).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Seconds: 0, Degraded: true}, got)
	})

	t.Run("no fetcher configured", func(t *testing.T) {
		got := NewDurationResolver(nil, nil, nil).Resolve(ctx, "abc123")
		assert.Equal(t, DurationResult{Degraded: true}, got)
	})

	t.Run("exhausted quota skips the call", func(t *testing.T) {
		fetcher := &mockFetcher{}
		quota := &mockQuota{}
		quota.On("CheckQuotaAvailable", ctx, 1).Return(false, nil)

		got := NewDurationResolver(fetcher, quota, nil).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Degraded: true}, got)
		fetcher.AssertNotCalled(t, "FetchDuration", mock.Anything, mock.Anything)
		quota.AssertNotCalled(t, "RecordQuotaUsage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("quota storage errors do not block the call", func(t *testing.T) {
		fetcher := &mockFetcher{}
		fetcher.On("FetchDuration", ctx, "abc123").Return(45, nil)
		quota := &mockQuota{}
		quota.On("CheckQuotaAvailable", ctx, 1).Return(false, errors.New("db down"))
		quota.On("RecordQuotaUsage", ctx, 1, models.QuotaOpVideosList).Return(errors.New("db down"))

		got := NewDurationResolver(fetcher, quota, nil).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Seconds: 45}, got)
		quota.AssertExpectations(t)
	})

	t.Run("usage is recorded after a call", func(t *testing.T) {
		fetcher := &mockFetcher{}
		fetcher.On("FetchDuration", ctx, "abc123").Return(0, errors.New("timeout"))
		quota := &mockQuota{}
		quota.On("CheckQuotaAvailable", ctx, 1).Return(true, nil)
		quota.On("RecordQuotaUsage", ctx, 1, models.QuotaOpVideosList).Return(nil).Once()

		got := NewDurationResolver(fetcher, quota, nil).Resolve(ctx, "abc123")

		assert.True(t, got.Degraded)
		quota.AssertExpectations(t)
	})

	t.Run("cache hit skips the call", func(t *testing.T) {
		fetcher := &mockFetcher{}
		cache := &mapCache{values: map[string]int{"abc123": 600}}

		got := NewDurationResolver(fetcher, nil, cache).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Seconds: 600}, got)
		fetcher.AssertNotCalled(t, "FetchDuration", mock.Anything, mock.Anything)
	})

	t.Run("only successful lookups are cached", func(t *testing.T) {
		cache := &mapCache{values: map[string]int{}}

		ok := &mockFetcher{}
		ok.On("FetchDuration", ctx, "good").Return(90, nil)
		NewDurationResolver(ok, nil, cache).Resolve(ctx, "good")

		bad := &mockFetcher{}
		bad.On("FetchDuration", ctx, "bad").Return(0, errors.New("boom"))
		NewDurationResolver(bad, nil, cache).Resolve(ctx, "bad")

		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 90, cache.values["good"])
		_, cached := cache.values["bad"]
		assert.False(t, cached)
	})

	t.Run("cache errors fall through to the API", func(t *testing.T) {
		fetcher := &mockFetcher{}
		fetcher.On("FetchDuration", ctx, "abc123").Return(30, nil)
		cache := &mapCache{values: map[string]int{}, getErr: errors.New("redis down")}

		got := NewDurationResolver(fetcher, nil, cache).Resolve(ctx, "abc123")

		assert.Equal(t, DurationResult{Seconds: 30}, got)
	})
}
