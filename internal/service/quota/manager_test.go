package quota

import (
	"context"
	"errors"
	"testing"

	"github.com/ad-tracker/ytsummary-go/internal/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockQuotaRepo struct {
	mock.Mock
}

func (m *mockQuotaRepo) GetTodaysQuota(ctx context.Context) (*models.QuotaUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuotaUsage), args.Error(1)
}

func (m *mockQuotaRepo) IncrementQuota(ctx context.Context, quotaCost int, operationType string, quotaLimit int) error {
	return m.Called(ctx, quotaCost, operationType, quotaLimit).Error(0)
}

func (m *mockQuotaRepo) GetQuotaHistory(ctx context.Context, days int) ([]*models.QuotaUsage, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuotaUsage), args.Error(1)
}

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager(&mockQuotaRepo{}, 0, 0)
	assert.Equal(t, 10000, m.dailyLimit)
	assert.Equal(t, 90, m.thresholdPercent)

	m = NewManager(&mockQuotaRepo{}, 500, 150)
	assert.Equal(t, 500, m.dailyLimit)
	assert.Equal(t, 90, m.thresholdPercent)
}

func TestManager_CheckQuotaAvailable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		used      int
		required  int
		wantAvail bool
	}{
		{"well under threshold", 10, 1, true},
		{"exactly at threshold after call", 89, 1, true},
		{"would cross threshold", 90, 1, false},
		{"over limit", 150, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockQuotaRepo{}
			repo.On("GetTodaysQuota", ctx).Return(&models.QuotaUsage{QuotaUsed: tt.used}, nil)

			m := NewManager(repo, 100, 90)
			ok, err := m.CheckQuotaAvailable(ctx, tt.required)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAvail, ok)
			repo.AssertExpectations(t)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		repo := &mockQuotaRepo{}
		repo.On("GetTodaysQuota", ctx).Return(nil, errors.New("db down"))

		ok, err := NewManager(repo, 100, 90).CheckQuotaAvailable(ctx, 1)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestManager_RecordQuotaUsage(t *testing.T) {
	ctx := context.Background()

	repo := &mockQuotaRepo{}
	repo.On("IncrementQuota", ctx, 1, models.QuotaOpVideosList, 100).Return(nil).Once()
	repo.On("IncrementQuota", ctx, 2, models.QuotaOpOther, 100).Return(errors.New("db down")).Once()

	m := NewManager(repo, 100, 90)
	require.NoError(t, m.RecordQuotaUsage(ctx, 1, models.QuotaOpVideosList))
	assert.Error(t, m.RecordQuotaUsage(ctx, 2, ""))
	repo.AssertExpectations(t)
}

func TestManager_GetQuotaInfoAndRemaining(t *testing.T) {
	ctx := context.Background()

	repo := &mockQuotaRepo{}
	repo.On("GetTodaysQuota", ctx).Return(&models.QuotaUsage{QuotaUsed: 40, OperationsCount: 40}, nil)

	m := NewManager(repo, 100, 90)

	info, err := m.GetQuotaInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, info.QuotaUsed)
	assert.Equal(t, 100, info.QuotaLimit)
	assert.Equal(t, 60, info.QuotaRemaining)

	remaining, err := m.GetRemainingQuota(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, remaining)
}

func TestManager_GetQuotaHistory(t *testing.T) {
	ctx := context.Background()
	history := []*models.QuotaUsage{{QuotaUsed: 3}}

	repo := &mockQuotaRepo{}
	repo.On("GetQuotaHistory", ctx, 7).Return(history, nil)

	got, err := NewManager(repo, 100, 90).GetQuotaHistory(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, history, got)
}
