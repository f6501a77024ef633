package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoLinkSummary associates a VideoLink with one of its Summaries and
// carries the user's favorite flag for that pair.
type VideoLinkSummary struct {
	URLID      uuid.UUID `db:"url_id"`
	SummaryID  uuid.UUID `db:"summary_id"`
	IsFavorite bool      `db:"is_favorite"`
	CreatedAt  time.Time `db:"created_at"`
}

// NewVideoLinkSummary creates a relation that starts out not favorited.
func NewVideoLinkSummary(urlID, summaryID uuid.UUID) *VideoLinkSummary {
	return &VideoLinkSummary{
		URLID:     urlID,
		SummaryID: summaryID,
		CreatedAt: time.Now(),
	}
}

// LinkHistoryEntry is one row of a user's history: the link plus its most
// recent summary, if any.
type LinkHistoryEntry struct {
	Link             VideoLink
	SummaryID        *uuid.UUID
	Summary          *string
	IsFavorite       bool
	SummaryCreatedAt *time.Time
}

// HasSummary reports whether a summary is attached to the entry.
func (e *LinkHistoryEntry) HasSummary() bool {
	return e.SummaryID != nil && e.Summary != nil
}
