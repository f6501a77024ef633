package handler

import (
	"github.com/ad-tracker/ytsummary-go/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router serves. Quota may be nil when the
// YouTube client is not configured.
type Handlers struct {
	Links     *LinkHandler
	Favorites *FavoriteHandler
	Quota     *QuotaHandler
	Health    *HealthHandler
	Identity  *middleware.Identity
}

// NewRouter builds the gin engine.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/health/live", h.Health.LivenessProbe)
	router.GET("/health/ready", h.Health.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1", h.Identity.Handler())
	api.POST("/links", h.Links.Submit)
	api.GET("/links", h.Links.List)
	api.POST("/links/:urlId/summaries/:summaryId/favorite", h.Favorites.Toggle)
	if h.Quota != nil {
		api.GET("/quota", h.Quota.Get)
	}

	return router
}
