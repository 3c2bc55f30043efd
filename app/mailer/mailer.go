// Package mailer delivers rendered newsletters through the Resend email
// API.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Mailer struct {
	client *resend.Client
	sender string
}

// NewMailer creates a mailer sending from the configured address, e.g.
// "Threadletter <digest@threadletter.io>".
func NewMailer(apiKey, sender string) *Mailer {
	return &Mailer{
		client: resend.NewClient(apiKey),
		sender: sender,
	}
}

func (m *Mailer) Send(ctx context.Context, to, subject, html, text string) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email delivered", "to", to, "subject", subject, "email_id", sent.Id)

	return nil
}
