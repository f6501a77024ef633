package repository

import (
	"context"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/models"

	"github.com/google/uuid"
)

// SummaryRepository defines operations for managing summaries.
// Summaries are insert-only; the table rejects updates.
type SummaryRepository interface {
	Create(ctx context.Context, summary *models.Summary) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Summary, error)
}

type summaryRepository struct {
	conn db.DBTX
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(conn db.DBTX) SummaryRepository {
	return &summaryRepository{conn: conn}
}

func (r *summaryRepository) Create(ctx context.Context, summary *models.Summary) error {
	query := `
		INSERT INTO summary_records (id, user_id, summary, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, summary.ID, summary.UserID, summary.Text, summary.CreatedAt)
	if err != nil {
		return db.WrapError(err, "create summary")
	}

	return nil
}

func (r *summaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Summary, error) {
	query := `SELECT id, user_id, summary, created_at FROM summary_records WHERE id = $1`

	s := &models.Summary{}
	err := r.conn.QueryRow(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Text, &s.CreatedAt)
	if err != nil {
		return nil, db.WrapError(err, "get summary by id")
	}

	return s, nil
}
