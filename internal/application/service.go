package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/apperror"
	"github.com/oksasatya/rentify/pkg/helpers"
)

// sideEffectTimeout bounds best-effort calls to the audit log, search index and email queue.
const sideEffectTimeout = 3 * time.Second

// Upload is one file taken from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ClientInfo identifies the caller for audit records.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// storeErr maps repository errors to application errors.
func storeErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	default:
		return apperror.Internal("database error", err)
	}
}

func loggerOrNop(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return helpers.NopLogger()
	}
	return l
}

// detached returns a short-lived context that survives cancellation of ctx.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
}

func notify(ctx context.Context, n repo.Notifier, logger *logrus.Logger, to, template string, data map[string]any) {
	if n == nil || to == "" {
		return
	}
	c, cancel := detached(ctx)
	defer cancel()
	if err := n.Notify(c, to, template, data); err != nil {
		logger.WithError(err).WithField("template", template).Warn("enqueue email failed")
	}
}
