// Package handler provides HTTP request handlers for the application.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/models"
	"github.com/ad-tracker/ytsummary-go/internal/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps a pipeline error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnsupportedSource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   service.UserMessage(err),
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:    http.StatusBadRequest,
		Error:     http.StatusText(http.StatusBadRequest),
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}
