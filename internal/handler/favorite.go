package handler

import (
	"context"
	"net/http"

	"github.com/ad-tracker/ytsummary-go/internal/middleware"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/gin-gonic/gin"
)

// FavoriteSetter flips favorite flags.
type FavoriteSetter interface {
	SetFavorite(ctx context.Context, userID, urlID, summaryID string, current bool) models.ToggleOutcome
}

// FavoriteHandler serves favorite toggles.
type FavoriteHandler struct {
	toggler FavoriteSetter
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(toggler FavoriteSetter) *FavoriteHandler {
	return &FavoriteHandler{toggler: toggler}
}

// Toggle handles POST /api/v1/links/:urlId/summaries/:summaryId/favorite.
// The body carries the flag value the caller currently sees. The response is
// always 200 with the toggle outcome.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsFavorite == nil {
		c.JSON(http.StatusOK, models.FavoriteResponse{Outcome: models.ToggleIgnored})
		return
	}

	outcome := h.toggler.SetFavorite(
		c.Request.Context(),
		middleware.UserIDFromContext(c),
		c.Param("urlId"),
		c.Param("summaryId"),
		*req.IsFavorite,
	)

	c.JSON(http.StatusOK, models.FavoriteResponse{Outcome: outcome})
}
