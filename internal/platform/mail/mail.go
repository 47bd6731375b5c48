// Package mail renders and delivers transactional email.
package mail

import "context"

// Message is a rendered email ready for delivery.
type Message struct {
	To      []string
	Subject string
	Content string
}

// Mailer renders templates and dispatches messages.
type Mailer interface {
	Render(template string, data any) (string, error)
	Send(ctx context.Context, msg Message) error
}
