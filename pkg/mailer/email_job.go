package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/rentify/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "booking_confirmed"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrNoRecipient = errors.New("email job has no recipient")

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Build renders the job's template, if any, into subject, text and html.
func Build(job EmailJob) (subject, text, html string, err error) {
	if job.To == "" {
		return "", "", "", ErrNoRecipient
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	data := templates.FromMap(job.Data)
	if data.Email == "" {
		data.Email = job.To
	}
	subject, text, html, err = templates.Render(job.Template, data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}

// Deliver builds the job and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html, err := Build(job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
