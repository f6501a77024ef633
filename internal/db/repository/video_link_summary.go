package repository

import (
	"context"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/models"

	"github.com/google/uuid"
)

// VideoLinkSummaryRepository defines operations on link/summary relations.
type VideoLinkSummaryRepository interface {
	// Create inserts a new relation.
	Create(ctx context.Context, rel *models.VideoLinkSummary) error

	// SetFavoriteIfCurrent flips is_favorite from current to !current, but only
	// when the stored value still equals current and the link belongs to userID.
	// It reports whether a row changed.
	SetFavoriteIfCurrent(ctx context.Context, userID string, urlID, summaryID uuid.UUID, current bool) (bool, error)

	// ListByURL returns every relation of a link, newest first.
	ListByURL(ctx context.Context, urlID uuid.UUID) ([]*models.VideoLinkSummary, error)
}

type videoLinkSummaryRepository struct {
	conn db.DBTX
}

// NewVideoLinkSummaryRepository creates a new VideoLinkSummaryRepository.
func NewVideoLinkSummaryRepository(conn db.DBTX) VideoLinkSummaryRepository {
	return &videoLinkSummaryRepository{conn: conn}
}

func (r *videoLinkSummaryRepository) Create(ctx context.Context, rel *models.VideoLinkSummary) error {
	query := `
		INSERT INTO url_summaries (url_id, summary_id, is_favorite, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, rel.URLID, rel.SummaryID, rel.IsFavorite, rel.CreatedAt)
	if err != nil {
		return db.WrapError(err, "create link summary relation")
	}

	return nil
}

func (r *videoLinkSummaryRepository) SetFavoriteIfCurrent(ctx context.Context, userID string, urlID, summaryID uuid.UUID, current bool) (bool, error) {
	query := `
		UPDATE url_summaries us
		SET is_favorite = NOT $3
		FROM url_records u
		WHERE us.url_id = $1
		  AND us.summary_id = $2
		  AND us.is_favorite = $3
		  AND u.id = us.url_id
		  AND u.user_id = $4
	`

	tag, err := r.conn.Exec(ctx, query, urlID, summaryID, current, userID)
	if err != nil {
		return false, db.WrapError(err, "set favorite")
	}

	return tag.RowsAffected() == 1, nil
}

func (r *videoLinkSummaryRepository) ListByURL(ctx context.Context, urlID uuid.UUID) ([]*models.VideoLinkSummary, error) {
	query := `
		SELECT url_id, summary_id, is_favorite, created_at
		FROM url_summaries
		WHERE url_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.conn.Query(ctx, query, urlID)
	if err != nil {
		return nil, db.WrapError(err, "list link summary relations")
	}
	defer rows.Close()

	var rels []*models.VideoLinkSummary
	for rows.Next() {
		rel := &models.VideoLinkSummary{}
		if err := rows.Scan(&rel.URLID, &rel.SummaryID, &rel.IsFavorite, &rel.CreatedAt); err != nil {
			return nil, db.WrapError(err, "scan link summary relation")
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}
