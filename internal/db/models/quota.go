package models

import "time"

// Operation types tracked in api_quota_usage.
const (
	QuotaOpVideosList = "videos_list"
	QuotaOpOther      = "other"
)

// QuotaUsage tracks one day of YouTube Data API quota consumption.
type QuotaUsage struct {
	Date            time.Time `db:"date"`
	QuotaUsed       int       `db:"quota_used"`
	QuotaLimit      int       `db:"quota_limit"`
	OperationsCount int       `db:"operations_count"`
	VideosListCalls int       `db:"videos_list_calls"`
	OtherCalls      int       `db:"other_calls"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// QuotaInfo is the current day's quota status.
type QuotaInfo struct {
	QuotaUsed       int `json:"quota_used"`
	QuotaLimit      int `json:"quota_limit"`
	QuotaRemaining  int `json:"quota_remaining"`
	OperationsCount int `json:"operations_count"`
}
