// Package quota guards YouTube Data API usage against the daily quota.
package quota

import (
	"context"
	"fmt"

	"github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/db/repository"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"go.uber.org/zap"
)

// Manager handles YouTube API quota management
type Manager struct {
	repo             repository.QuotaRepository
	dailyLimit       int
	thresholdPercent int // Stop calling the API when this % of quota is used
}

// NewManager creates a new quota manager
func NewManager(repo repository.QuotaRepository, dailyLimit int, thresholdPercent int) *Manager {
	if dailyLimit <= 0 {
		dailyLimit = 10000 // YouTube API v3 default
	}
	if thresholdPercent <= 0 || thresholdPercent > 100 {
		thresholdPercent = 90
	}

	return &Manager{
		repo:             repo,
		dailyLimit:       dailyLimit,
		thresholdPercent: thresholdPercent,
	}
}

func (m *Manager) threshold() int {
	return (m.dailyLimit * m.thresholdPercent) / 100
}

// CheckQuotaAvailable reports whether requiredQuota units can be spent without
// crossing the threshold.
func (m *Manager) CheckQuotaAvailable(ctx context.Context, requiredQuota int) (bool, error) {
	info, err := m.GetQuotaInfo(ctx)
	if err != nil {
		return false, err
	}

	threshold := m.threshold()
	if info.QuotaUsed+requiredQuota > threshold {
		logger.Log.Warn("YouTube quota threshold reached",
			zap.Int("quota_used", info.QuotaUsed),
			zap.Int("required", requiredQuota),
			zap.Int("threshold", threshold),
			zap.Int("daily_limit", m.dailyLimit),
		)
		return false, nil
	}

	return true, nil
}

// RecordQuotaUsage records API quota usage
func (m *Manager) RecordQuotaUsage(ctx context.Context, quotaCost int, operationType string) error {
	if operationType == "" {
		operationType = models.QuotaOpOther
	}

	if err := m.repo.IncrementQuota(ctx, quotaCost, operationType, m.dailyLimit); err != nil {
		return fmt.Errorf("failed to record quota usage: %w", err)
	}

	logger.Log.Debug("recorded YouTube quota usage",
		zap.Int("cost", quotaCost),
		zap.String("operation", operationType),
	)

	return nil
}

// GetQuotaInfo returns current quota information
func (m *Manager) GetQuotaInfo(ctx context.Context) (*models.QuotaInfo, error) {
	usage, err := m.repo.GetTodaysQuota(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quota info: %w", err)
	}

	remaining := m.dailyLimit - usage.QuotaUsed
	if remaining < 0 {
		remaining = 0
	}

	return &models.QuotaInfo{
		QuotaUsed:       usage.QuotaUsed,
		QuotaLimit:      m.dailyLimit,
		QuotaRemaining:  remaining,
		OperationsCount: usage.OperationsCount,
	}, nil
}

// GetRemainingQuota returns how much quota is remaining before threshold
func (m *Manager) GetRemainingQuota(ctx context.Context) (int, error) {
	info, err := m.GetQuotaInfo(ctx)
	if err != nil {
		return 0, err
	}

	remaining := m.threshold() - info.QuotaUsed
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}

// GetQuotaHistory returns per-day usage for the last days days.
func (m *Manager) GetQuotaHistory(ctx context.Context, days int) ([]*models.QuotaUsage, error) {
	return m.repo.GetQuotaHistory(ctx, days)
}
