package repository

import (
	"context"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/models"
)

// QuotaRepository defines operations for managing API quota usage
type QuotaRepository interface {
	// GetTodaysQuota retrieves today's quota usage. A day with no usage yet
	// yields a zero-valued row rather than an error.
	GetTodaysQuota(ctx context.Context) (*models.QuotaUsage, error)

	// IncrementQuota adds quotaCost to today's usage
	IncrementQuota(ctx context.Context, quotaCost int, operationType string, quotaLimit int) error

	// GetQuotaHistory retrieves quota usage history
	GetQuotaHistory(ctx context.Context, days int) ([]*models.QuotaUsage, error)
}

type quotaRepository struct {
	conn db.DBTX
}

// NewQuotaRepository creates a new QuotaRepository
func NewQuotaRepository(conn db.DBTX) QuotaRepository {
	return &quotaRepository{conn: conn}
}

const quotaColumns = `date, quota_used, quota_limit, operations_count,
		       videos_list_calls, other_calls, created_at, updated_at`

func (r *quotaRepository) GetTodaysQuota(ctx context.Context) (*models.QuotaUsage, error) {
	query := `SELECT ` + quotaColumns + ` FROM api_quota_usage WHERE date = CURRENT_DATE`

	usage := &models.QuotaUsage{}
	err := r.conn.QueryRow(ctx, query).Scan(
		&usage.Date,
		&usage.QuotaUsed,
		&usage.QuotaLimit,
		&usage.OperationsCount,
		&usage.VideosListCalls,
		&usage.OtherCalls,
		&usage.CreatedAt,
		&usage.UpdatedAt,
	)

	if err != nil {
		wrapped := db.WrapError(err, "get todays quota")
		if db.IsNotFound(wrapped) {
			today := time.Now().Truncate(24 * time.Hour)
			return &models.QuotaUsage{Date: today}, nil
		}
		return nil, wrapped
	}

	return usage, nil
}

func (r *quotaRepository) IncrementQuota(ctx context.Context, quotaCost int, operationType string, quotaLimit int) error {
	videosList, other := 0, 0
	if operationType == models.QuotaOpVideosList {
		videosList = 1
	} else {
		other = 1
	}

	query := `
		INSERT INTO api_quota_usage (date, quota_used, quota_limit, operations_count, videos_list_calls, other_calls)
		VALUES (CURRENT_DATE, $1, $2, 1, $3, $4)
		ON CONFLICT (date) DO UPDATE
		SET quota_used = api_quota_usage.quota_used + EXCLUDED.quota_used,
		    quota_limit = EXCLUDED.quota_limit,
		    operations_count = api_quota_usage.operations_count + 1,
		    videos_list_calls = api_quota_usage.videos_list_calls + EXCLUDED.videos_list_calls,
		    other_calls = api_quota_usage.other_calls + EXCLUDED.other_calls,
		    updated_at = NOW()
	`

	_, err := r.conn.Exec(ctx, query, quotaCost, quotaLimit, videosList, other)
	if err != nil {
		return db.WrapError(err, "increment quota")
	}

	return nil
}

func (r *quotaRepository) GetQuotaHistory(ctx context.Context, days int) ([]*models.QuotaUsage, error) {
	if days <= 0 {
		days = 7
	}

	query := `
		SELECT ` + quotaColumns + `
		FROM api_quota_usage
		WHERE date >= CURRENT_DATE - INTERVAL '1 day' * $1
		ORDER BY date DESC
	`

	rows, err := r.conn.Query(ctx, query, days)
	if err != nil {
		return nil, db.WrapError(err, "get quota history")
	}
	defer rows.Close()

	var history []*models.QuotaUsage
	for rows.Next() {
		usage := &models.QuotaUsage{}
		err := rows.Scan(
			&usage.Date,
			&usage.QuotaUsed,
			&usage.QuotaLimit,
			&usage.OperationsCount,
			&usage.VideosListCalls,
			&usage.OtherCalls,
			&usage.CreatedAt,
			&usage.UpdatedAt,
		)
		if err != nil {
			return nil, db.WrapError(err, "scan quota history")
		}
		history = append(history, usage)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate quota history")
	}

	return history, nil
}
