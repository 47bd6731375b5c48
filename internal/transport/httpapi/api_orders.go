package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"
	ordermapper "github.com/belandja/commerce-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/belandja/commerce-api/internal/domains/orders/application"
	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	ordersports "github.com/belandja/commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/belandja/commerce-api/internal/durable/temporal/activities/orders"
	sharederrors "github.com/belandja/commerce-api/internal/shared/errors"
)

const (
	defaultHistoryPage  = 1
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/orders
// Place a new order for the authenticated user
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	input := ordermapper.ToPlaceOrderInput(payload, CurrentUserID(c))
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"data":    ordermapper.FromDomainOrder(order),
		"message": "Order created successfully",
	})
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*domain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /api/orders
// List the authenticated user's orders, newest first
func (api *OrderAPI) ListOrders(c *gin.Context) {
	page, limit, ok := parseHistoryQuery(c)
	if !ok {
		return
	}
	result, err := api.service.History(c.Request.Context(), CurrentUserID(c), page, limit)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	totalPages := int64(0)
	if result.Limit > 0 {
		totalPages = (result.Total + int64(result.Limit) - 1) / int64(result.Limit)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       ordermapper.FromDomainOrders(result.Orders),
		"page":       result.Page,
		"limit":      result.Limit,
		"total":      result.Total,
		"totalPages": totalPages,
		"message":    "Orders fetched successfully",
	})
}

func parseHistoryQuery(c *gin.Context) (page, limit int, ok bool) {
	fields := map[string]string{}
	page = parsePositiveQuery(c, "page", defaultHistoryPage, fields)
	limit = parsePositiveQuery(c, "limit", defaultHistoryLimit, fields)
	if limit > maxHistoryLimit {
		fields["limit"] = "limit must not exceed " + strconv.Itoa(maxHistoryLimit)
	}
	if len(fields) > 0 {
		sharederrors.ValidationFailed(c, fields)
		return 0, 0, false
	}
	return page, limit, true
}

func parsePositiveQuery(c *gin.Context, name string, fallback int, fields map[string]string) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		fields[name] = name + " must be a positive integer"
		return fallback
	}
	return value
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		sharederrors.ValidationFailed(c, validationErr.Fields)
		return
	}
	if errors.Is(err, catalogports.ErrInsufficientStock) {
		sharederrors.Respond(c, sharederrors.ErrInsufficientStock.WithDetail(err.Error()))
		return
	}
	if errors.Is(err, catalogports.ErrProductNotFound) || errors.Is(err, ordersports.ErrUserNotFound) {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	// Rejections crossing the Temporal boundary arrive as application
	// errors; the original cause does not survive serialization. Field
	// violations travel as error details and become a validation problem
	// again here.
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.OrderRejectedErrorType {
		if appErr.HasDetails() {
			var fields map[string]string
			if detailsErr := appErr.Details(&fields); detailsErr == nil && len(fields) > 0 {
				sharederrors.ValidationFailed(c, fields)
				return
			}
		}
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(appErr.Message()))
		return
	}
	if errors.Is(err, ordersapp.ErrPersistence) || errors.Is(err, ordersapp.ErrNotification) {
		sharederrors.Respond(c, sharederrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	sharederrors.RespondError(c, err)
}
