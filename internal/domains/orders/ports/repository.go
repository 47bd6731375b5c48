package ports

import (
	"context"
	"errors"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository persists orders. Insert must write the order and its full item
// sequence as one unit; a partially persisted order is invalid.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByOwner returns the owner's orders, newest first, plus the total
	// count across all pages. page and limit are 1-based positive values.
	FindByOwner(ctx context.Context, ownerID string, page, limit int) ([]*domain.Order, int64, error)
	// Delete removes an order. Only used as a compensating action.
	Delete(ctx context.Context, id string) error
}
