package ports

import (
	"context"
	"errors"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
)

var ErrUserNotFound = errors.New("user not found")

// PlaceOrderItem is one requested order line as submitted by the client.
type PlaceOrderItem struct {
	Name      string
	ProductID string
	Price     float64
	Quantity  int
}

// PlaceOrderInput is the full order placement command. CreatedBy comes from
// the verified token, never from the request body.
type PlaceOrderInput struct {
	GrandTotal float64
	Items      []PlaceOrderItem
	CreatedBy  string
}

// HistoryPage is one page of an owner's order history.
type HistoryPage struct {
	Orders []*domain.Order
	Total  int64
	Page   int
	Limit  int
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	History(ctx context.Context, ownerID string, page, limit int) (*HistoryPage, error)
}

// Recipient is the slice of a user the notification path needs.
type Recipient struct {
	ID       string
	FullName string
	Email    string
}

// UserDirectory resolves order owners for notification delivery.
type UserDirectory interface {
	FindRecipient(ctx context.Context, userID string) (*Recipient, error)
}

// Notifier dispatches the order confirmation. Failures surface to the
// caller but never undo the committed order or stock changes.
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.Order, recipient *Recipient) error
}
