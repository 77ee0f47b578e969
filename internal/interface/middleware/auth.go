package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
	"github.com/oksasatya/rentify/pkg/response"
)

// Authenticator verifies a session token; satisfied by *application.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*helpers.Claims, error)
}

// bearerToken reads "Authorization: Bearer <jwt>", falling back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return tok
	}
	return ""
}

// Auth validates the session token and sets userID and claims in the Gin context on success.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if apperror.KindOf(err) == apperror.KindInternal {
				status = http.StatusInternalServerError
			}
			msg := "invalid access token"
			var ae *apperror.Error
			if errors.As(err, &ae) && ae.Message != "" {
				msg = ae.Message
			}
			response.Error(c, status, msg, nil)
			return
		}

		c.Set("userID", claims.UserID) // required by handlers
		c.Set("claims", claims)
		c.Next()
	}
}
