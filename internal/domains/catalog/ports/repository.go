package ports

import (
	"context"
	"errors"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInsufficientStock signals a reservation asked for more units than remain.
	ErrInsufficientStock = errors.New("insufficient product quantity")
)

// Reservation is one line of an inventory reservation.
type Reservation struct {
	ProductID string
	Quantity  int
}

// Repository persists the product and category catalog.
type Repository interface {
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Inventory exposes the stock counter behind atomic conditional operations.
// Reserve must decrement qty only when enough stock remains, as one unit:
// concurrent reservations for the same product serialize, and qty never
// goes negative.
type Inventory interface {
	GetAvailable(ctx context.Context, productID string) (*domain.Product, error)
	Reserve(ctx context.Context, productID string, quantity int) error
	// ReserveAll reserves every line or none; on partial failure any lines
	// already reserved are released before returning.
	ReserveAll(ctx context.Context, items []Reservation) error
	// Release returns previously reserved units to stock. Used as the
	// compensating action when order persistence fails after reservation.
	Release(ctx context.Context, items []Reservation) error
}
