package adapter

import "context"

// SendEmailInput holds the fields of an outgoing email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender defines the interface for sending transactional email.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) error
}
