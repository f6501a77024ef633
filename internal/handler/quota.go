package handler

import (
	"context"
	"net/http"
	"strconv"

	dbmodels "github.com/ad-tracker/ytsummary-go/internal/db/models"
	"github.com/ad-tracker/ytsummary-go/internal/middleware"
	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/internal/service"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxQuotaHistoryDays = 30

// QuotaReporter reports YouTube Data API quota usage.
type QuotaReporter interface {
	GetQuotaInfo(ctx context.Context) (*dbmodels.QuotaInfo, error)
	GetQuotaHistory(ctx context.Context, days int) ([]*dbmodels.QuotaUsage, error)
}

// QuotaHandler serves quota status.
type QuotaHandler struct {
	reporter QuotaReporter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(reporter QuotaReporter) *QuotaHandler {
	return &QuotaHandler{reporter: reporter}
}

// Get handles GET /api/v1/quota?days=N.
func (h *QuotaHandler) Get(c *gin.Context) {
	if middleware.UserIDFromContext(c) == "" {
		writeError(c, service.ErrUnauthenticated)
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxQuotaHistoryDays {
			writeBadRequest(c, "days must be between 1 and 30")
			return
		}
		days = n
	}

	ctx := c.Request.Context()
	info, err := h.reporter.GetQuotaInfo(ctx)
	if err != nil {
		logger.Log.Error("failed to get quota info", zap.Error(err))
		writeError(c, service.ErrStorageUnavailable)
		return
	}

	resp := models.QuotaResponse{
		QuotaUsed:       info.QuotaUsed,
		QuotaLimit:      info.QuotaLimit,
		QuotaRemaining:  info.QuotaRemaining,
		OperationsCount: info.OperationsCount,
	}

	if days > 0 {
		history, err := h.reporter.GetQuotaHistory(ctx, days)
		if err != nil {
			logger.Log.Error("failed to get quota history", zap.Error(err))
			writeError(c, service.ErrStorageUnavailable)
			return
		}
		for _, u := range history {
			resp.History = append(resp.History, models.QuotaDayDTO{
				Date:            u.Date.Format("2006-01-02"),
				QuotaUsed:       u.QuotaUsed,
				VideosListCalls: u.VideosListCalls,
				OtherCalls:      u.OtherCalls,
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
