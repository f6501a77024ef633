package service

import (
	"context"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/metrics"
	"github.com/ad-tracker/ytsummary-go/internal/service/youtube"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"go.uber.org/zap"
)

// DurationResult is a resolved video length. Degraded is set when the length
// could not be determined and Seconds fell back to zero.
type DurationResult struct {
	Seconds  int
	Degraded bool
}

// VideoDurationFetcher looks up a video's length in seconds.
type VideoDurationFetcher interface {
	FetchDuration(ctx context.Context, videoID string) (int, error)
}

// QuotaGuard gates metadata API calls on the remaining daily quota.
type QuotaGuard interface {
	CheckQuotaAvailable(ctx context.Context, requiredQuota int) (bool, error)
	RecordQuotaUsage(ctx context.Context, quotaCost int, operationType string) error
}

// DurationCache stores resolved durations by video id.
type DurationCache interface {
	Get(ctx context.Context, videoID string) (int, bool, error)
	Set(ctx context.Context, videoID string, seconds int) error
}

// DurationResolver resolves video durations. It never returns an error.
type DurationResolver struct {
	fetcher VideoDurationFetcher
	quota   QuotaGuard
	cache   DurationCache
}

// NewDurationResolver creates a resolver. quota and cache may be nil. A nil
// fetcher makes every lookup degraded.
func NewDurationResolver(fetcher VideoDurationFetcher, quota QuotaGuard, cache DurationCache) *DurationResolver {
	return &DurationResolver{
		fetcher: fetcher,
		quota:   quota,
		cache:   cache,
	}
}

// Resolve returns the duration of videoID. An empty id is not looked up.
func (r *DurationResolver) Resolve(ctx context.Context, videoID string) DurationResult {
	if videoID == "" {
		return DurationResult{}
	}

	log := logger.Log.With(zap.String("video_id", videoID))

	if r.cache != nil {
		seconds, ok, err := r.cache.Get(ctx, videoID)
		if err != nil {
			log.Warn("duration cache lookup failed", zap.Error(err))
		} else if ok {
			metrics.RecordExternalCall(metrics.ServiceYouTube, metrics.ResultCacheHit, 0)
			return DurationResult{Seconds: seconds}
		}
	}

	if r.fetcher == nil {
		metrics.RecordExternalCall(metrics.ServiceYouTube, metrics.ResultSkipped, 0)
		return DurationResult{Degraded: true}
	}

	if r.quota != nil {
		available, err := r.quota.CheckQuotaAvailable(ctx, youtube.VideosListCost)
		if err != nil {
			log.Warn("quota check failed, calling API anyway", zap.Error(err))
		} else if !available {
			metrics.RecordExternalCall(metrics.ServiceYouTube, metrics.ResultSkipped, 0)
			return DurationResult{Degraded: true}
		}
	}

	start := time.Now()
	seconds, err := r.fetcher.FetchDuration(ctx, videoID)
	elapsed := time.Since(start)

	if r.quota != nil {
		if qErr := r.quota.RecordQuotaUsage(ctx, youtube.VideosListCost, models.QuotaOpVideosList); qErr != nil {
			log.Warn("failed to record quota usage", zap.Error(qErr))
		}
	}

	if err != nil {
		metrics.RecordExternalCall(metrics.ServiceYouTube, metrics.ResultFailure, elapsed)
		log.Warn("video duration lookup failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return DurationResult{Degraded: true}
	}

	metrics.RecordExternalCall(metrics.ServiceYouTube, metrics.ResultSuccess, elapsed)

	if r.cache != nil {
		if err := r.cache.Set(ctx, videoID, seconds); err != nil {
			log.Warn("failed to cache duration", zap.Error(err))
		}
	}

	return DurationResult{Seconds: seconds}
}
