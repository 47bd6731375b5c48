package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	ordersports "github.com/belandja/commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/belandja/commerce-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to
// place an order. Validation and stock errors are not retried; the activity
// compensates reserved stock itself before failing, so a retry always starts
// from a clean state.
func RunOrderPlacementSequence(ctx workflow.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "owner", input.CreatedBy, "items", len(input.Items))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.OrderRejectedErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "owner", input.CreatedBy, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
