package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports broker connectivity.
type HealthChecker interface {
	IsHealthy() bool
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db        Pinger
	cache     Pinger        // Optional
	publisher HealthChecker // Optional
}

// NewHealthHandler creates a new HealthHandler instance. cache and publisher
// may be nil when those integrations are disabled.
func NewHealthHandler(db Pinger, cache Pinger, publisher HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:        db,
		cache:     cache,
		publisher: publisher,
	}
}

// LivenessProbe checks if the application is running.
func (h *HealthHandler) LivenessProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "UP",
		"time":   time.Now(),
	})
}

// ReadinessProbe checks if the application is ready to serve traffic.
func (h *HealthHandler) ReadinessProbe(c *gin.Context) {
	ctx := c.Request.Context()

	// Check database connectivity
	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "DOWN",
			"database": "unhealthy",
			"error":    err.Error(),
			"time":     time.Now(),
		})
		return
	}

	body := gin.H{
		"status":   "UP",
		"database": "healthy",
		"time":     time.Now(),
	}

	// The cache only speeds up duration lookups, so it never fails readiness.
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			body["cache"] = "unhealthy"
		} else {
			body["cache"] = "healthy"
		}
	}

	// Check RabbitMQ connectivity
	if h.publisher != nil {
		if !h.publisher.IsHealthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "DOWN",
				"rabbitmq": "unhealthy",
				"time":     time.Now(),
			})
			return
		}
		body["rabbitmq"] = "healthy"
	}

	c.JSON(http.StatusOK, body)
}
