// Package notification adapts the mail platform to the orders Notifier port.
package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
	"github.com/belandja/commerce-api/internal/platform/mail"
)

const (
	invoiceTemplate = "invoice.html"
	invoiceSubject  = "Your Order Invoice"
)

var (
	_ ports.Notifier = (*MailNotifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// MailNotifier renders the invoice template and dispatches it by mail.
type MailNotifier struct {
	mailer       mail.Mailer
	companyName  string
	contactEmail string
}

func NewMailNotifier(mailer mail.Mailer, companyName, contactEmail string) *MailNotifier {
	return &MailNotifier{mailer: mailer, companyName: companyName, contactEmail: contactEmail}
}

// OrderCreated sends the order confirmation invoice to the owner.
func (n *MailNotifier) OrderCreated(ctx context.Context, order *domain.Order, recipient *ports.Recipient) error {
	content, err := n.mailer.Render(invoiceTemplate, map[string]any{
		"CompanyName":  n.companyName,
		"ContactEmail": n.contactEmail,
		"CustomerName": recipient.FullName,
		"Year":         time.Now().Year(),
		"Order":        order,
		"GrandTotal":   order.GrandTotal,
	})
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, mail.Message{
		To:      []string{recipient.Email},
		Subject: invoiceSubject,
		Content: content,
	})
}

// LogNotifier records the confirmation instead of sending it. Used when no
// SMTP transport is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderCreated(_ context.Context, order *domain.Order, recipient *ports.Recipient) error {
	if n.logger != nil {
		n.logger.Info("order confirmation (mail transport disabled)",
			slog.String("order.id", order.ID),
			slog.String("recipient", recipient.Email),
			slog.Float64("grandTotal", order.GrandTotal),
		)
	}
	return nil
}
