// Package models contains the request/response DTOs and broker events for the
// link summarization API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionOutcome is the result of a successful link submission.
type SubmissionOutcome string

// SubmissionOutcome constants.
const (
	OutcomeCreated   SubmissionOutcome = "created"
	OutcomeDuplicate SubmissionOutcome = "duplicate"
)

// ToggleOutcome is the result of a favorite toggle. It is never an error.
type ToggleOutcome string

// ToggleOutcome constants.
const (
	ToggleToggled ToggleOutcome = "toggled"
	ToggleStale   ToggleOutcome = "stale"
	ToggleIgnored ToggleOutcome = "ignored"
	ToggleFailed  ToggleOutcome = "failed"
)

// SubmitLinkRequest is the body of POST /api/v1/links.
type SubmitLinkRequest struct {
	URL string `json:"url"`
}

// LinkDTO is a stored link as returned by the API.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type LinkDTO struct {
	ID            uuid.UUID `json:"id"`
	URL           string    `json:"url"`
	Count         int       `json:"count"`
	VideoDuration int       `json:"video_duration"`
	TimeSaved     string    `json:"time_saved"`
	CreatedAt     time.Time `json:"created_at"`
}

// SummaryDTO is a stored summary as returned by the API.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SummaryDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"summary"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitLinkResponse is the body returned for a successful submission.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SubmitLinkResponse struct {
	Outcome         SubmissionOutcome `json:"outcome"`
	Message         string            `json:"message"`
	Link            *LinkDTO          `json:"link,omitempty"`
	Summary         *SummaryDTO       `json:"summary,omitempty"`
	DurationUnknown bool              `json:"duration_unknown,omitempty"`
	SummaryDegraded bool              `json:"summary_degraded,omitempty"`
}

// HistoryEntryDTO is one row of GET /api/v1/links.
type HistoryEntryDTO struct {
	LinkDTO
	Summary *SummaryDTO `json:"summary"`
}

// HistoryResponse is the body of GET /api/v1/links.
type HistoryResponse struct {
	Sort  string            `json:"sort"`
	Links []HistoryEntryDTO `json:"links"`
}

// FavoriteRequest carries the favorite state the caller currently sees.
type FavoriteRequest struct {
	IsFavorite *bool `json:"is_favorite"`
}

// FavoriteResponse reports what the toggle did.
type FavoriteResponse struct {
	Outcome ToggleOutcome `json:"outcome"`
}

// QuotaResponse reports YouTube Data API quota status.
type QuotaResponse struct {
	QuotaUsed       int           `json:"quota_used"`
	QuotaLimit      int           `json:"quota_limit"`
	QuotaRemaining  int           `json:"quota_remaining"`
	OperationsCount int           `json:"operations_count"`
	History         []QuotaDayDTO `json:"history,omitempty"`
}

// QuotaDayDTO is one day of quota history.
type QuotaDayDTO struct {
	Date            string `json:"date"`
	QuotaUsed       int    `json:"quota_used"`
	VideosListCalls int    `json:"videos_list_calls"`
	OtherCalls      int    `json:"other_calls"`
}

// SubmissionEvent is published to the broker after each successful submission.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SubmissionEvent struct {
	ID              uuid.UUID         `json:"id"`
	UserID          string            `json:"user_id"`
	URL             string            `json:"url"`
	VideoID         string            `json:"video_id,omitempty"`
	Outcome         SubmissionOutcome `json:"outcome"`
	URLID           uuid.UUID         `json:"url_id"`
	SummaryID       *uuid.UUID        `json:"summary_id,omitempty"`
	Count           int               `json:"count"`
	VideoDuration   int               `json:"video_duration"`
	SummaryDegraded bool              `json:"summary_degraded"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

// ErrorResponse represents an error response.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}
