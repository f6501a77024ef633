package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{-5, "0s"},
		{45, "45s"},
		{60, "1m"},
		{3600, "1h"},
		{3603, "1h 3s"},
		{3723, "1h 2m 3s"},
		{7200, "2h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "FormatDuration(%d)", tt.seconds)
	}
}

func TestNewVideoLink(t *testing.T) {
	link := NewVideoLink("user-1", "https://youtu.be/abc123", 3723)

	assert.NotEqual(t, uuid.Nil, link.ID)
	assert.Equal(t, "user-1", link.UserID)
	assert.Equal(t, "https://youtu.be/abc123", link.URL)
	assert.Equal(t, 1, link.Count)
	assert.Equal(t, 3723, link.VideoDuration)
	assert.Equal(t, "1h 2m 3s", link.TimeSaved())
	assert.False(t, link.CreatedAt.IsZero())

	negative := NewVideoLink("user-1", "https://youtu.be/x", -1)
	assert.Equal(t, 0, negative.VideoDuration)
}

func TestNewSummaryAndRelation(t *testing.T) {
	s := NewSummary("user-1", "A short summary.")
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, "A short summary.", s.Text)

	linkID := uuid.New()
	rel := NewVideoLinkSummary(linkID, s.ID)
	assert.Equal(t, linkID, rel.URLID)
	assert.Equal(t, s.ID, rel.SummaryID)
	assert.False(t, rel.IsFavorite)
}

func TestLinkHistoryEntryHasSummary(t *testing.T) {
	entry := LinkHistoryEntry{}
	assert.False(t, entry.HasSummary())

	id := uuid.New()
	text := "summary"
	entry.SummaryID = &id
	entry.Summary = &text
	assert.True(t, entry.HasSummary())
}
