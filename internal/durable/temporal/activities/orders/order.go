package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"
	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	ordersports "github.com/belandja/commerce-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the full placement flow, including stock
	// compensation on failure.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// OrderRejectedErrorType marks placement failures that a retry cannot fix.
	OrderRejectedErrorType = "OrderRejected"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder reserves stock, persists the order, and delivers the
// confirmation. Rejections caused by the request itself are surfaced as
// non-retryable so the workflow fails fast instead of retrying a bad order.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "owner", input.CreatedBy)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "owner", input.CreatedBy, "items", len(input.Items))
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "owner", input.CreatedBy, "error", err)
		if isRejection(err) {
			return nil, rejectionError(err)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// rejectionError wraps a placement rejection as a non-retryable
// application error. Wrapped error chains do not survive serialization,
// so validation field detail travels as error details for the HTTP
// boundary to rebuild.
func rejectionError(err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return temporal.NewNonRetryableApplicationError(err.Error(), OrderRejectedErrorType, err, validationErr.Fields)
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), OrderRejectedErrorType, err)
}

func isRejection(err error) bool {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	return errors.Is(err, catalogports.ErrProductNotFound) ||
		errors.Is(err, catalogports.ErrInsufficientStock) ||
		errors.Is(err, ordersports.ErrUserNotFound)
}
