package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/application"
	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/response"
)

const photosField = "listingPhotos"

type ListingHandler struct {
	base
	Svc *application.ListingService
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger, exposeInternal bool) *ListingHandler {
	return &ListingHandler{base: base{Logger: logger, ExposeInternal: exposeInternal}, Svc: svc}
}

// listingRequest binds both the multipart create form and the JSON update body.
type listingRequest struct {
	Category      string   `form:"category" json:"category"`
	Type          string   `form:"type" json:"type"`
	StreetAddress string   `form:"streetAddress" json:"streetAddress"`
	AptSuite      string   `form:"aptSuite" json:"aptSuite"`
	City          string   `form:"city" json:"city"`
	Province      string   `form:"province" json:"province"`
	Country       string   `form:"country" json:"country"`
	GuestCount    int      `form:"guestCount" json:"guestCount" binding:"min=0"`
	BedroomCount  int      `form:"bedroomCount" json:"bedroomCount" binding:"min=0"`
	BedCount      int      `form:"bedCount" json:"bedCount" binding:"min=0"`
	BathroomCount int      `form:"bathroomCount" json:"bathroomCount" binding:"min=0"`
	Amenities     []string `form:"amenities" json:"amenities"`
	Title         string   `form:"title" json:"title" binding:"required"`
	Description   string   `form:"description" json:"description"`
	Highlight     string   `form:"highlight" json:"highlight"`
	HighlightDesc string   `form:"highlightDesc" json:"highlightDesc"`
	Price         float64  `form:"price" json:"price" binding:"gt=0"`
}

func (r listingRequest) input() application.ListingInput {
	return application.ListingInput{
		Category:      r.Category,
		Type:          r.Type,
		StreetAddress: r.StreetAddress,
		AptSuite:      r.AptSuite,
		City:          r.City,
		Province:      r.Province,
		Country:       r.Country,
		GuestCount:    r.GuestCount,
		BedroomCount:  r.BedroomCount,
		BedCount:      r.BedCount,
		BathroomCount: r.BathroomCount,
		Amenities:     amenityList(r.Amenities),
		Title:         r.Title,
		Description:   r.Description,
		Highlight:     r.Highlight,
		HighlightDesc: r.HighlightDesc,
		Price:         r.Price,
	}
}

// amenityList accepts repeated form values or a single JSON array string.
func amenityList(in []string) []string {
	if len(in) == 1 && strings.HasPrefix(strings.TrimSpace(in[0]), "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(in[0]), &parsed); err == nil {
			return parsed
		}
	}
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

type listQuery struct {
	Category string `form:"category"`
	Limit    int    `form:"limit" binding:"omitempty,min=0,max=100"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

// Create handles POST /properties/create (multipart with listingPhotos).
func (h *ListingHandler) Create(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "invalid payload", err)
		return
	}

	var uploads []application.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		opened, closeAll, err := openUploads(form.File[photosField])
		if err != nil {
			h.fail(c, apperror.Internal("Fail to create Listing", err))
			return
		}
		defer closeAll()
		uploads = opened
	}

	l, err := h.Svc.Create(c.Request.Context(), c.GetString(CtxUserID), req.input(), uploads)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, l)
}

// List handles GET /properties?category=&limit=&offset=.
func (h *ListingHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "invalid query", err)
		return
	}
	out, err := h.Svc.List(c.Request.Context(), repo.ListingFilter{Category: q.Category, Limit: q.Limit, Offset: q.Offset})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *ListingHandler) Search(c *gin.Context) {
	out, err := h.Svc.Search(c.Request.Context(), c.Param("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), c.Param("listingId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, l)
}

func (h *ListingHandler) Update(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid payload", err)
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), c.GetString(CtxUserID), c.Param("listingId"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, l)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(CtxUserID), c.Param("listingId")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Listing deleted")
}
