package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/rentify/internal/interface/http"
	"github.com/oksasatya/rentify/internal/interface/middleware"
)

type BookingModule struct {
	Handler *handlers.BookingHandler
	Authn   middleware.Authenticator
	RDB     *redis.Client
}

func NewBookingModule(h *handlers.BookingHandler, authn middleware.Authenticator, rdb *redis.Client) *BookingModule {
	return &BookingModule{Handler: h, Authn: authn, RDB: rdb}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.Auth(m.Authn))
	{
		bookings.POST("/create", middleware.RateLimit(m.RDB, middleware.BookingLimit, nil), m.Handler.Create)
		bookings.GET("/:bookingId", m.Handler.Get)
	}
}
