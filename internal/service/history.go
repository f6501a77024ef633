package service

import (
	"context"

	dbmodels "github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"go.uber.org/zap"
)

// HistoryStore lists a user's links with their latest summaries.
type HistoryStore interface {
	ListHistory(ctx context.Context, userID string, ascending bool) ([]*dbmodels.LinkHistoryEntry, error)
}

// HistoryService serves a user's submission history.
type HistoryService struct {
	store HistoryStore
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns the user's links sorted by video duration, longest first
// unless ascending is set.
func (h *HistoryService) List(ctx context.Context, userID string, ascending bool) ([]*dbmodels.LinkHistoryEntry, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	entries, err := h.store.ListHistory(ctx, userID, ascending)
	if err != nil {
		logger.Log.Error("failed to list history", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrStorageUnavailable
	}

	if entries == nil {
		entries = []*dbmodels.LinkHistoryEntry{}
	}
	return entries, nil
}
