package middleware

import (
	"time"

	"github.com/ad-tracker/ytsummary-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs each request once it has been served.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", c.ClientIP()),
		}
		if userID := UserIDFromContext(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}

		if c.Writer.Status() >= 500 {
			logger.Log.Error("request completed", fields...)
			return
		}
		logger.Log.Info("request completed", fields...)
	}
}
