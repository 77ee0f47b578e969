package application

import (
	"context"

	repo "github.com/oksasatya/rentify/internal/domain/repository"
	"github.com/oksasatya/rentify/pkg/mailer"
)

// jobPublisher is satisfied by *helpers.RabbitPublisher.
type jobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier puts email jobs on the queue consumed by the email worker.
type QueueNotifier struct {
	Pub jobPublisher
}

func NewQueueNotifier(pub jobPublisher) *QueueNotifier {
	return &QueueNotifier{Pub: pub}
}

func (n *QueueNotifier) Notify(ctx context.Context, to, template string, data map[string]any) error {
	return n.Pub.PublishJSON(ctx, mailer.EmailJob{To: to, Template: template, Data: data})
}

var _ repo.Notifier = (*QueueNotifier)(nil)
