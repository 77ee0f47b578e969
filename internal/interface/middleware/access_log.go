package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccessLog writes one structured line per request.
func AccessLog(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         clientKeyIP(c),
			"request_id": c.GetString("request_id"),
		}
		if uid := c.GetString("userID"); uid != "" {
			fields["user_id"] = uid
		}
		entry := logger.WithFields(fields)
		switch s := c.Writer.Status(); {
		case s >= 500:
			entry.Error("http request")
		case s >= 400:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}
