package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/rentify/internal/interface/http"
	"github.com/oksasatya/rentify/internal/interface/middleware"
)

// UserModule serves profiles, trips, reservations, properties and the wishlist.
// Public: GET /users/:userId, GET /users/:userId/properties
// Protected: trips, reservations and PATCH /users/:userId/:listingId
type UserModule struct {
	Handler *handlers.UserHandler
	Authn   middleware.Authenticator
}

func NewUserModule(h *handlers.UserHandler, authn middleware.Authenticator) *UserModule {
	return &UserModule{Handler: h, Authn: authn}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.GET("/:userId", m.Handler.GetProfile)
	users.GET("/:userId/properties", m.Handler.Properties)

	authMW := middleware.Auth(m.Authn)
	users.GET("/:userId/trips", authMW, m.Handler.Trips)
	users.GET("/:userId/reservations", authMW, m.Handler.Reservations)
	users.PATCH("/:userId/:listingId", authMW, m.Handler.ToggleWishlist)
}
