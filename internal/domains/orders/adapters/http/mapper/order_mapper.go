package mapper

import (
	"time"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
)

// OrderItemRequest is one submitted order line.
type OrderItemRequest struct {
	Name      string  `json:"name"`
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderRequest is the order placement payload.
type OrderRequest struct {
	GrandTotal float64            `json:"grandTotal"`
	OrderItems []OrderItemRequest `json:"orderItems"`
}

// OrderItemResponse is one order line as returned to the client.
type OrderItemResponse struct {
	Name      string  `json:"name"`
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderResponse is the transport representation of a placed order.
type OrderResponse struct {
	ID         string              `json:"id"`
	GrandTotal float64             `json:"grandTotal"`
	OrderItems []OrderItemResponse `json:"orderItems"`
	CreatedBy  string              `json:"createdBy"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// ToPlaceOrderInput converts the request payload into the application command.
// CreatedBy always comes from the verified token, never from the body.
func ToPlaceOrderInput(req OrderRequest, createdBy string) ports.PlaceOrderInput {
	items := make([]ports.PlaceOrderItem, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		items = append(items, ports.PlaceOrderItem{
			Name:      item.Name,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return ports.PlaceOrderInput{
		GrandTotal: req.GrandTotal,
		Items:      items,
		CreatedBy:  createdBy,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			Name:      item.Name,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return OrderResponse{
		ID:         order.ID,
		GrandTotal: order.GrandTotal,
		OrderItems: items,
		CreatedBy:  order.CreatedBy,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// FromDomainOrders maps a page of orders.
func FromDomainOrders(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
