package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rentify/pkg/apperror"
)

// ErrorBody is the failure envelope written for every non-2xx JSON response.
type ErrorBody struct {
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// JSON writes a success body as is.
func JSON(ctx *gin.Context, status int, body any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, body)
}

// Message writes {"message": msg}.
func Message(ctx *gin.Context, status int, msg string) {
	JSON(ctx, status, gin.H{"message": msg})
}

// Error writes the failure envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, err interface{}) ErrorBody {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := ErrorBody{
		Message:   message,
		Error:     err,
		RequestID: ctx.GetString("request_id"),
	}
	ctx.AbortWithStatusJSON(status, body)
	return body
}

// FromError converts a service error into the failure envelope.
// Internal causes are only exposed when exposeInternal is set.
func FromError(ctx *gin.Context, err error, exposeInternal bool) ErrorBody {
	var ae *apperror.Error
	if !errors.As(err, &ae) {
		ae = apperror.Internal("internal server error", err)
	}
	status := apperror.Status(ae.Kind)
	msg := ae.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	var detail interface{}
	switch {
	case ae.Details != nil:
		detail = ae.Details
	case ae.Kind == apperror.KindInternal && exposeInternal && ae.Err != nil:
		detail = ae.Err.Error()
	}
	return Error(ctx, status, msg, detail)
}
