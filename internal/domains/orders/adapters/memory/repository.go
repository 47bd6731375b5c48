package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	seq    int
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	clone.Items = append([]domain.OrderItem(nil), order.Items...)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	if _, exists := r.orders[clone.ID]; exists {
		return nil, errors.New("order already exists")
	}
	// Strictly increasing timestamps keep newest-first ordering stable even
	// when inserts land within the same clock tick.
	r.seq++
	clone.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	clone.UpdatedAt = clone.CreatedAt
	r.orders[clone.ID] = &clone
	result := clone
	result.Items = append([]domain.OrderItem(nil), clone.Items...)
	return &result, nil
}

func (r *Repository) FindByOwner(_ context.Context, ownerID string, page, limit int) ([]*domain.Order, int64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, errors.New("page and limit must be positive")
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var owned []*domain.Order
	for _, order := range r.orders {
		if order.CreatedBy == ownerID {
			owned = append(owned, order)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	total := int64(len(owned))
	start := (page - 1) * limit
	if start >= len(owned) {
		return []*domain.Order{}, total, nil
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	pageOrders := make([]*domain.Order, 0, end-start)
	for _, order := range owned[start:end] {
		clone := *order
		clone.Items = append([]domain.OrderItem(nil), order.Items...)
		pageOrders = append(pageOrders, &clone)
	}
	return pageOrders, total, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}
