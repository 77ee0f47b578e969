package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rentify/pkg/response"
)

// BodyLimit caps the request body at limit bytes. A declared Content-Length
// over the cap is rejected up front; otherwise reads past it fail with
// *http.MaxBytesError. A limit <= 0 disables the cap.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			response.Error(c, http.StatusRequestEntityTooLarge, "upload too large", nil)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
