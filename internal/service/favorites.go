package service

import (
	"context"

	"github.com/ad-tracker/ytsummary-go/internal/metrics"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteStore flips a relation's favorite flag with compare-and-swap.
type FavoriteStore interface {
	SetFavoriteIfCurrent(ctx context.Context, userID string, urlID, summaryID uuid.UUID, current bool) (bool, error)
}

// FavoriteToggler flips favorite flags. A flip only happens when the stored
// value still matches what the caller saw, so two requests made from the same
// view flip once: the second reports Stale.
type FavoriteToggler struct {
	store FavoriteStore
}

// NewFavoriteToggler creates a new FavoriteToggler.
func NewFavoriteToggler(store FavoriteStore) *FavoriteToggler {
	return &FavoriteToggler{store: store}
}

// SetFavorite sets the flag to !current for the user's (urlID, summaryID)
// relation. It never returns an error; storage failures yield ToggleFailed.
func (f *FavoriteToggler) SetFavorite(ctx context.Context, userID, urlID, summaryID string, current bool) models.ToggleOutcome {
	outcome := f.setFavorite(ctx, userID, urlID, summaryID, current)
	metrics.RecordToggle(string(outcome))
	return outcome
}

func (f *FavoriteToggler) setFavorite(ctx context.Context, userID, urlID, summaryID string, current bool) models.ToggleOutcome {
	if userID == "" || urlID == "" || summaryID == "" {
		return models.ToggleIgnored
	}

	urlUUID, err := uuid.Parse(urlID)
	if err != nil {
		return models.ToggleIgnored
	}
	summaryUUID, err := uuid.Parse(summaryID)
	if err != nil {
		return models.ToggleIgnored
	}

	changed, err := f.store.SetFavoriteIfCurrent(ctx, userID, urlUUID, summaryUUID, current)
	if err != nil {
		logger.Log.Error("favorite toggle failed",
			zap.String("user_id", userID),
			zap.String("url_id", urlID),
			zap.String("summary_id", summaryID),
			zap.Error(err),
		)
		return models.ToggleFailed
	}

	if !changed {
		return models.ToggleStale
	}
	return models.ToggleToggled
}
