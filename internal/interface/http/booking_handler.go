package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/application"
	"github.com/oksasatya/rentify/pkg/response"
)

type BookingHandler struct {
	base
	Svc *application.BookingService
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger, exposeInternal bool) *BookingHandler {
	return &BookingHandler{base: base{Logger: logger, ExposeInternal: exposeInternal}, Svc: svc}
}

// The guest is always the authenticated caller.
type bookingRequest struct {
	ListingID string `json:"listingId" binding:"required"`
	StartDate string `json:"startDate" binding:"required,isodate"`
	EndDate   string `json:"endDate" binding:"required,isodate"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid payload", err)
		return
	}
	b, err := h.Svc.CreateBooking(c.Request.Context(), application.BookingInput{
		ListingID: req.ListingID,
		GuestID:   c.GetString(CtxUserID),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.GetString(CtxUserID), c.Param("bookingId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}
