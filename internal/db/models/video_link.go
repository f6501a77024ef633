package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoLink is a link submitted by a user. There is at most one per (user, url);
// resubmissions bump Count instead of creating a new row.
type VideoLink struct {
	ID            uuid.UUID `db:"id"`
	UserID        string    `db:"user_id"`
	URL           string    `db:"url"`
	Count         int       `db:"count"`
	VideoDuration int       `db:"video_duration"`
	CreatedAt     time.Time `db:"created_at"`
}

// NewVideoLink creates a first-time submission with a fresh id and a count of one.
func NewVideoLink(userID, url string, videoDuration int) *VideoLink {
	if videoDuration < 0 {
		videoDuration = 0
	}
	return &VideoLink{
		ID:            uuid.New(),
		UserID:        userID,
		URL:           url,
		Count:         1,
		VideoDuration: videoDuration,
		CreatedAt:     time.Now(),
	}
}

// TimeSaved renders the video duration for display.
func (v *VideoLink) TimeSaved() string {
	return FormatDuration(v.VideoDuration)
}
