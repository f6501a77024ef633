package repository

import (
	"context"
	"fmt"

	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/models"

	"github.com/google/uuid"
)

// VideoLinkRepository defines operations for managing submitted links.
type VideoLinkRepository interface {
	// GetByUserAndURL returns the user's link for the exact submitted URL.
	// A missing row is reported as db.ErrNotFound.
	GetByUserAndURL(ctx context.Context, userID, url string) (*models.VideoLink, error)

	// UpsertForSubmission inserts the link, or bumps the count of the row that
	// already holds (user_id, url). It reports whether this call inserted the row
	// and refreshes link with the stored values either way.
	UpsertForSubmission(ctx context.Context, link *models.VideoLink) (bool, error)

	// IncrementCount atomically adds one to the submission count and returns the new value.
	IncrementCount(ctx context.Context, id uuid.UUID) (int, error)

	// ListHistory returns the user's links with their latest summary, ordered by video duration.
	ListHistory(ctx context.Context, userID string, ascending bool) ([]*models.LinkHistoryEntry, error)
}

type videoLinkRepository struct {
	conn db.DBTX
}

// NewVideoLinkRepository creates a new VideoLinkRepository.
func NewVideoLinkRepository(conn db.DBTX) VideoLinkRepository {
	return &videoLinkRepository{conn: conn}
}

func (r *videoLinkRepository) GetByUserAndURL(ctx context.Context, userID, url string) (*models.VideoLink, error) {
	query := `
		SELECT id, user_id, url, count, video_duration, created_at
		FROM url_records
		WHERE user_id = $1 AND url = $2
	`

	link := &models.VideoLink{}
	err := r.conn.QueryRow(ctx, query, userID, url).Scan(
		&link.ID,
		&link.UserID,
		&link.URL,
		&link.Count,
		&link.VideoDuration,
		&link.CreatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get link by user and url")
	}

	return link, nil
}

func (r *videoLinkRepository) UpsertForSubmission(ctx context.Context, link *models.VideoLink) (bool, error) {
	query := `
		INSERT INTO url_records (id, user_id, url, count, video_duration, created_at)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (user_id, url) DO UPDATE
		SET count = url_records.count + 1
		RETURNING id, count, video_duration, created_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.conn.QueryRow(ctx, query,
		link.ID,
		link.UserID,
		link.URL,
		link.VideoDuration,
		link.CreatedAt,
	).Scan(
		&link.ID,
		&link.Count,
		&link.VideoDuration,
		&link.CreatedAt,
		&inserted,
	)

	if err != nil {
		return false, db.WrapError(err, "upsert link")
	}

	return inserted, nil
}

func (r *videoLinkRepository) IncrementCount(ctx context.Context, id uuid.UUID) (int, error) {
	query := `UPDATE url_records SET count = count + 1 WHERE id = $1 RETURNING count`

	var count int
	if err := r.conn.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, db.WrapError(err, "increment link count")
	}

	return count, nil
}

func (r *videoLinkRepository) ListHistory(ctx context.Context, userID string, ascending bool) ([]*models.LinkHistoryEntry, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.user_id, u.url, u.count, u.video_duration, u.created_at,
		       latest.summary_id, latest.summary, latest.is_favorite, latest.created_at
		FROM url_records u
		LEFT JOIN LATERAL (
			SELECT us.summary_id, sr.summary, us.is_favorite, sr.created_at
			FROM url_summaries us
			JOIN summary_records sr ON sr.id = us.summary_id
			WHERE us.url_id = u.id
			ORDER BY sr.created_at DESC
			LIMIT 1
		) latest ON TRUE
		WHERE u.user_id = $1
		ORDER BY u.video_duration %s, u.created_at DESC
	`, direction)

	rows, err := r.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, db.WrapError(err, "list link history")
	}
	defer rows.Close()

	var entries []*models.LinkHistoryEntry
	for rows.Next() {
		entry := &models.LinkHistoryEntry{}
		var isFavorite *bool
		err := rows.Scan(
			&entry.Link.ID,
			&entry.Link.UserID,
			&entry.Link.URL,
			&entry.Link.Count,
			&entry.Link.VideoDuration,
			&entry.Link.CreatedAt,
			&entry.SummaryID,
			&entry.Summary,
			&isFavorite,
			&entry.SummaryCreatedAt,
		)
		if err != nil {
			return nil, db.WrapError(err, "scan link history")
		}
		entry.IsFavorite = isFavorite != nil && *isFavorite
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, db.WrapError(err, "iterate link history")
	}

	return entries, nil
}
