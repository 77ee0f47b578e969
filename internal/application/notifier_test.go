package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/rentify/pkg/mailer"
)

type capturePublisher struct{ bodies []any }

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return nil
}

func TestQueueNotifierPublishesEmailJob(t *testing.T) {
	pub := &capturePublisher{}
	n := NewQueueNotifier(pub)

	require.NoError(t, n.Notify(context.Background(), "a@b.test", "welcome", map[string]any{"Name": "A"}))

	require.Len(t, pub.bodies, 1)
	assert.Equal(t, mailer.EmailJob{To: "a@b.test", Template: "welcome", Data: map[string]any{"Name": "A"}}, pub.bodies[0])
}
