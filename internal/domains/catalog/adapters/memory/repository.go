package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
	"github.com/belandja/commerce-api/internal/domains/catalog/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Inventory  = (*Repository)(nil)
)

// Repository is an in-memory catalog and inventory adapter. The repository
// mutex serializes check-and-decrement so concurrent reservations for the
// same product cannot both observe the old quantity.
type Repository struct {
	mu         sync.RWMutex
	products   map[string]*domain.Product
	categories map[string]*domain.Category
}

func NewRepository() *Repository {
	return &Repository{
		products:   map[string]*domain.Product{},
		categories: map[string]*domain.Category{},
	}
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.products[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) ListProducts(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	clone := *category
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.categories[clone.ID]; ok {
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.categories[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ports.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

// GetAvailable returns the product with its live stock quantity.
func (r *Repository) GetAvailable(ctx context.Context, productID string) (*domain.Product, error) {
	return r.GetProduct(ctx, productID)
}

// Reserve decrements stock only when enough remains, under the write lock.
func (r *Repository) Reserve(_ context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return ports.ErrInsufficientStock
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reserveLocked(productID, quantity)
}

// ReserveAll reserves every line or none, holding the lock across the batch.
func (r *Repository) ReserveAll(_ context.Context, items []ports.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range items {
		if err := r.reserveLocked(item.ProductID, item.Quantity); err != nil {
			for _, done := range items[:i] {
				if product, ok := r.products[done.ProductID]; ok {
					product.Qty += done.Quantity
				}
			}
			return err
		}
	}
	return nil
}

// Release returns previously reserved units to stock.
func (r *Repository) Release(_ context.Context, items []ports.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return ports.ErrProductNotFound
		}
		product.Qty += item.Quantity
		product.UpdatedAt = time.Now()
	}
	return nil
}

func (r *Repository) reserveLocked(productID string, quantity int) error {
	product, ok := r.products[productID]
	if !ok {
		return ports.ErrProductNotFound
	}
	if quantity <= 0 || quantity > product.Qty {
		return ports.ErrInsufficientStock
	}
	product.Qty -= quantity
	product.UpdatedAt = time.Now()
	return nil
}
