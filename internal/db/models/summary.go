package models

import (
	"time"

	"github.com/google/uuid"
)

// Summary is generated text for a submitted link. Summaries are never modified.
type Summary struct {
	ID        uuid.UUID `db:"id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

// NewSummary creates a Summary with a fresh id.
func NewSummary(userID, text string) *Summary {
	return &Summary{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
