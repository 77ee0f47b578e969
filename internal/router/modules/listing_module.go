package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/rentify/internal/interface/http"
	"github.com/oksasatya/rentify/internal/interface/middleware"
)

// ListingModule serves /properties. Reads are public; writes need a session.
type ListingModule struct {
	Handler *handlers.ListingHandler
	Authn   middleware.Authenticator

	// MaxUpload caps the create body, photos included; 0 means no cap.
	MaxUpload int64
}

func NewListingModule(h *handlers.ListingHandler, authn middleware.Authenticator, maxUpload int64) *ListingModule {
	return &ListingModule{Handler: h, Authn: authn, MaxUpload: maxUpload}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	props := rg.Group("/properties")
	props.GET("", m.Handler.List)
	props.GET("/search/:search", m.Handler.Search)
	props.GET("/:listingId", m.Handler.Get)

	auth := props.Group("")
	auth.Use(middleware.Auth(m.Authn))
	{
		auth.POST("/create", middleware.BodyLimit(m.MaxUpload), m.Handler.Create)
		auth.PUT("/:listingId", m.Handler.Update)
		auth.DELETE("/:listingId", m.Handler.Delete)
	}
}
