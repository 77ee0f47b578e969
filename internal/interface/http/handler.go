package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rentify/internal/application"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
	"github.com/oksasatya/rentify/pkg/response"
	"github.com/oksasatya/rentify/pkg/validation"
)

// Context keys set by middleware.
const (
	CtxUserID = "userID"
	CtxClaims = "claims"
)

// base carries what every handler needs to write failures.
type base struct {
	Logger *logrus.Logger
	// ExposeInternal puts the cause of 500s into the "error" field.
	ExposeInternal bool
}

func (b base) fail(c *gin.Context, err error) {
	if apperror.KindOf(err) == apperror.KindInternal {
		helpers.LogError(b.Logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
	}
	response.FromError(c, err, b.ExposeInternal)
}

func (b base) badRequest(c *gin.Context, msg string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, "upload too large", nil)
		return
	}
	b.fail(c, apperror.Validation(msg).WithDetails(validation.ToDetails(err)))
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func clientInfo(c *gin.Context) application.ClientInfo {
	return application.ClientInfo{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
}

func claimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

// openUploads opens every file header; the returned func closes them.
func openUploads(headers []*multipart.FileHeader) ([]application.Upload, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	out := make([]application.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		out = append(out, application.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}
	return out, closeAll, nil
}
