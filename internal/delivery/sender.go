package delivery

import "context"

// Email is a single delivery call: one batch of recipients, one body.
type Email struct {
    From    string
    To      []string
    Subject string
    HTML    string
    Text    string
}

// Sender defines the minimal interface an email provider must implement.
type Sender interface {
    Send(ctx context.Context, email *Email) error
}
