package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const (
	// MinItemQuantity and MaxItemQuantity bound a single order line.
	MinItemQuantity = 1
	MaxItemQuantity = 5
)

// totalTolerance absorbs float rounding when comparing the client grand
// total against the recomputed item sum.
const totalTolerance = 1e-9

var ErrInvalidStatus = errors.New("order status is invalid")

// OrderItem is one line of an order. Name and Price are snapshots taken at
// order time; the line is immutable once the order is created.
type OrderItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Subtotal returns price times quantity for the line.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order models a placed purchase. It exclusively owns its item sequence and
// references product and user only by identifier.
type Order struct {
	ID         string
	GrandTotal float64
	Items      []OrderItem
	CreatedBy  string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidationError lists every violated field of an order request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "order validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return "order validation failed: " + strings.Join(names, ", ")
}

// NewOrder validates and constructs an Order with status pending. All field
// violations are collected into a single ValidationError; nothing else is
// checked or mutated until the request shape is sound.
func NewOrder(id string, grandTotal float64, items []OrderItem, createdBy string) (*Order, error) {
	order := &Order{
		ID:         id,
		GrandTotal: grandTotal,
		Items:      append([]OrderItem(nil), items...),
		CreatedBy:  strings.TrimSpace(createdBy),
		Status:     StatusPending,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces the request-shape invariants and the server-side grand
// total check. It returns a ValidationError carrying all violations.
func (o *Order) Validate() error {
	fields := map[string]string{}
	if o.GrandTotal < 0 {
		fields["grandTotal"] = "grandTotal must not be negative"
	}
	if strings.TrimSpace(o.CreatedBy) == "" {
		fields["createdBy"] = "order owner is required"
	}
	if len(o.Items) == 0 {
		fields["orderItems"] = "orderItems must be a non-empty list"
	}
	var sum float64
	for idx, item := range o.Items {
		prefix := fmt.Sprintf("orderItems[%d]", idx)
		if strings.TrimSpace(item.Name) == "" {
			fields[prefix+".name"] = "name is required"
		}
		if strings.TrimSpace(item.ProductID) == "" {
			fields[prefix+".productId"] = "productId is required"
		}
		if item.Price <= 0 {
			fields[prefix+".price"] = "price must be greater than zero"
		}
		if item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity {
			fields[prefix+".quantity"] = fmt.Sprintf("quantity must be between %d and %d", MinItemQuantity, MaxItemQuantity)
		}
		sum += item.Subtotal()
	}
	if len(o.Items) > 0 && fields["grandTotal"] == "" && math.Abs(sum-o.GrandTotal) > totalTolerance {
		fields["grandTotal"] = fmt.Sprintf("grandTotal %.2f does not match item total %.2f", o.GrandTotal, sum)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// UpdateStatus accepts only known states and defaults to pending.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
