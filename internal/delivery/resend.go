package delivery

import (
    "context"
    "fmt"

    "github.com/resend/resend-go/v3"
)

// ResendSender delivers email batches through the Resend API.
type ResendSender struct {
    client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
    return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, email *Email) error {
    req := &resend.SendEmailRequest{
        From:    email.From,
        To:      email.To,
        Subject: email.Subject,
        Html:    email.HTML,
        Text:    email.Text,
    }

    _, err := s.client.Emails.SendWithContext(ctx, req)
    if err != nil {
        return fmt.Errorf("resend: failed to send email: %w", err)
    }

    return nil
}

var _ Sender = (*ResendSender)(nil)
