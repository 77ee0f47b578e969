package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rentify/pkg/response"
)

// AllowPrivateIP reports whether the client IP is loopback or in a private range
// (10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, fc00::/7).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(clientKeyIP(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// RequireAllowed rejects requests for which allow returns false with 403.
func RequireAllowed(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c) {
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
