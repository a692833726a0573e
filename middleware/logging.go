package middleware

import (
	"time"

	"resortbook/constants"
	"resortbook/services/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one line per request, plus any errors handlers attached.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		requestID := c.GetString(constants.ContextRequestID)
		latency := time.Since(start)

		switch {
		case status >= 500:
			log.Error("[%s] %s %s %d %v %s", requestID, c.Request.Method, c.Request.URL.Path, status, latency, c.Errors.String())
		case len(c.Errors) > 0:
			log.Warn("[%s] %s %s %d %v %s", requestID, c.Request.Method, c.Request.URL.Path, status, latency, c.Errors.String())
		default:
			log.Info("[%s] %s %s %d %v", requestID, c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}
