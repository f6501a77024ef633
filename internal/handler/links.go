package handler

import (
	"context"
	"net/http"
	"strings"

	dbmodels "github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/middleware"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/internal/service"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Submitter records link submissions.
type Submitter interface {
	Submit(ctx context.Context, userID, rawURL string) (*service.SubmitResult, error)
}

// HistoryLister lists a user's submitted links.
type HistoryLister interface {
	List(ctx context.Context, userID string, ascending bool) ([]*dbmodels.LinkHistoryEntry, error)
}

// LinkHandler serves link submission and history.
type LinkHandler struct {
	submitter Submitter
	history   HistoryLister
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(submitter Submitter, history HistoryLister) *LinkHandler {
	return &LinkHandler{
		submitter: submitter,
		history:   history,
	}
}

// Submit handles POST /api/v1/links.
func (h *LinkHandler) Submit(c *gin.Context) {
	var req models.SubmitLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Invalid request payload",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		writeBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.submitter.Submit(c.Request.Context(), middleware.UserIDFromContext(c), req.URL)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.SubmitLinkResponse{
		Outcome:         result.Outcome,
		Message:         result.Message(),
		Link:            toLinkDTO(result.Link),
		DurationUnknown: result.DurationDegraded,
		SummaryDegraded: result.SummaryDegraded,
	}
	if result.Summary != nil {
		resp.Summary = &models.SummaryDTO{
			ID:        result.Summary.ID,
			Text:      result.Summary.Text,
			CreatedAt: result.Summary.CreatedAt,
		}
		if result.Relation != nil {
			resp.Summary.IsFavorite = result.Relation.IsFavorite
		}
	}

	status := http.StatusOK
	if result.Outcome == models.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// List handles GET /api/v1/links?sort=asc|desc.
func (h *LinkHandler) List(c *gin.Context) {
	sort := strings.ToLower(c.DefaultQuery("sort", "desc"))
	if sort != "asc" && sort != "desc" {
		writeBadRequest(c, "sort must be asc or desc")
		return
	}

	entries, err := h.history.List(c.Request.Context(), middleware.UserIDFromContext(c), sort == "asc")
	if err != nil {
		writeError(c, err)
		return
	}

	links := make([]models.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		links = append(links, toHistoryEntryDTO(e))
	}

	c.JSON(http.StatusOK, models.HistoryResponse{
		Sort:  sort,
		Links: links,
	})
}

func toLinkDTO(link *dbmodels.VideoLink) *models.LinkDTO {
	if link == nil {
		return nil
	}
	return &models.LinkDTO{
		ID:            link.ID,
		URL:           link.URL,
		Count:         link.Count,
		VideoDuration: link.VideoDuration,
		TimeSaved:     link.TimeSaved(),
		CreatedAt:     link.CreatedAt,
	}
}

func toHistoryEntryDTO(e *dbmodels.LinkHistoryEntry) models.HistoryEntryDTO {
	dto := models.HistoryEntryDTO{LinkDTO: *toLinkDTO(&e.Link)}
	if e.HasSummary() {
		dto.Summary = &models.SummaryDTO{
			ID:         *e.SummaryID,
			Text:       *e.Summary,
			IsFavorite: e.IsFavorite,
		}
		if e.SummaryCreatedAt != nil {
			dto.Summary.CreatedAt = *e.SummaryCreatedAt
		}
	}
	return dto
}
