package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rentify/internal/interface/http"
	"github.com/oksasatya/rentify/internal/interface/middleware"
)

// AuthModule serves /auth: register and login are public, logout needs a session.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   middleware.Authenticator
	RDB     *redis.Client

	// MaxUpload caps the register body; 0 means no cap.
	MaxUpload int64
}

func NewAuthModule(h *handlers.AuthHandler, authn middleware.Authenticator, rdb *redis.Client, maxUpload int64) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn, RDB: rdb, MaxUpload: maxUpload}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", middleware.RateLimit(m.RDB, middleware.RegisterLimit, nil), middleware.BodyLimit(m.MaxUpload), m.Handler.Register)
	auth.POST("/login", middleware.RateLimit(m.RDB, middleware.LoginLimit, nil), m.Handler.Login)
	auth.POST("/logout", middleware.Auth(m.Authn), m.Handler.Logout)
}
