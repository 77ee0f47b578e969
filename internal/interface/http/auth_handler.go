package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/application"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
	"github.com/oksasatya/rentify/pkg/response"
)

type AuthHandler struct {
	base
	Svc     *application.AuthService
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.Manager, exposeInternal bool) *AuthHandler {
	return &AuthHandler{
		base:    base{Logger: logger, ExposeInternal: exposeInternal},
		Svc:     svc,
		Cookies: cookies,
	}
}

type registerRequest struct {
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required"`
	PhoneNumber string `form:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register (multipart with profileImage).
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "invalid payload", err)
		return
	}

	in := application.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	}
	if fh, err := c.FormFile("profileImage"); err == nil {
		uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
		if err != nil {
			h.fail(c, apperror.Internal("Registration failed!", err))
			return
		}
		defer closeAll()
		in.ProfileImage = &uploads[0]
	}

	u, err := h.Svc.Register(c.Request.Context(), in, clientInfo(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message": "User registered successfully!",
		"user":    u.View(),
	})
}

// Login handles POST /auth/login. An unknown email answers 409.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid payload", err)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			response.Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		h.fail(c, err)
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	response.JSON(c, http.StatusOK, gin.H{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.User.View(),
	})
}

// Logout revokes the current session token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), claimsFrom(c), clientInfo(c)); err != nil {
		h.fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Message(c, http.StatusOK, "Logged out")
}
