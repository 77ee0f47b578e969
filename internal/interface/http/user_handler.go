package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/application"
	"github.com/oksasatya/rentify/pkg/response"
)

type UserHandler struct {
	base
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, exposeInternal bool) *UserHandler {
	return &UserHandler{base: base{Logger: logger, ExposeInternal: exposeInternal}, Svc: svc}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u.View())
}

func (h *UserHandler) Trips(c *gin.Context) {
	out, err := h.Svc.Trips(c.Request.Context(), c.GetString(CtxUserID), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *UserHandler) Reservations(c *gin.Context) {
	out, err := h.Svc.Reservations(c.Request.Context(), c.GetString(CtxUserID), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *UserHandler) Properties(c *gin.Context) {
	out, err := h.Svc.Properties(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

// ToggleWishlist handles PATCH /users/:userId/:listingId.
func (h *UserHandler) ToggleWishlist(c *gin.Context) {
	wl, added, err := h.Svc.ToggleWishlist(c.Request.Context(), c.GetString(CtxUserID), c.Param("userId"), c.Param("listingId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "Listing is removed from wish list"
	if added {
		msg = "Listing is added to wish list"
	}
	response.JSON(c, http.StatusOK, gin.H{"message": msg, "wishList": wl})
}
