package ports

import (
	"context"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs the order placement sequence, either inline or
// on a durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
