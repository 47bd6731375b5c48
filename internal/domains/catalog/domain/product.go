package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyProductName = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("product price must be greater than zero")
	ErrNegativeQty      = errors.New("product quantity cannot be negative")
	ErrEmptyCategory    = errors.New("category name is required")
)

// Product models a sellable catalog item. Qty is the live stock counter;
// outside of catalog administration it may only be mutated through the
// inventory reserve/release operations.
type Product struct {
	ID          string
	Name        string
	SKU         string
	Description string
	Price       float64
	Qty         int
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates and constructs a Product.
func NewProduct(id, name, sku string, price float64, qty int) (*Product, error) {
	product := &Product{ID: id, SKU: strings.TrimSpace(sku), Price: price, Qty: qty}
	if err := product.SetName(name); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// SetName trims and validates the product name.
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyProductName
	}
	p.Name = name
	return nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Qty < 0 {
		return ErrNegativeQty
	}
	return nil
}

// Category groups products for browsing.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces invariants on the category.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	return nil
}
