package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"
	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
)

// Service runs the order placement sequence: validate, stock precheck,
// atomic reservation, persistence, notification. Stock is reserved before
// the order is written; a failed insert releases the reservation so the
// two mutations cannot diverge. Notification runs last and its failure
// never reverses the committed sale.
type Service struct {
	repo      ports.Repository
	inventory catalogports.Inventory
	users     ports.UserDirectory
	notifier  ports.Notifier
}

func NewService(repo ports.Repository, inventory catalogports.Inventory, users ports.UserDirectory, notifier ports.Notifier) *Service {
	return &Service{repo: repo, inventory: inventory, users: users, notifier: notifier}
}

func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	order, err := domain.NewOrder(uuid.NewString(), input.GrandTotal, items, input.CreatedBy)
	if err != nil {
		return nil, err
	}

	// Advisory precheck: reject obviously doomed orders before touching
	// stock. Correctness under concurrency comes from ReserveAll.
	for _, item := range order.Items {
		product, err := s.inventory.GetAvailable(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalogports.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", catalogports.ErrProductNotFound, item.ProductID)
			}
			return nil, err
		}
		if item.Quantity > product.Qty {
			return nil, fmt.Errorf("%w: product %s has %d left", catalogports.ErrInsufficientStock, item.ProductID, product.Qty)
		}
	}

	// Resolve the recipient before any stock mutation so a stale token
	// cannot leave reserved units behind.
	recipient, err := s.users.FindRecipient(ctx, order.CreatedBy)
	if err != nil {
		return nil, err
	}

	reservations := toReservations(order.Items)
	if err := s.inventory.ReserveAll(ctx, reservations); err != nil {
		return nil, err
	}

	saved, err := s.repo.Insert(ctx, order)
	if err != nil {
		if releaseErr := s.inventory.Release(ctx, reservations); releaseErr != nil {
			return nil, fmt.Errorf("%w: %v (stock release also failed: %v)", ErrPersistence, err, releaseErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.notifier.OrderCreated(ctx, saved, recipient); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotification, err)
	}
	return saved, nil
}

func (s *Service) History(ctx context.Context, ownerID string, page, limit int) (*ports.HistoryPage, error) {
	fields := map[string]string{}
	if ownerID == "" {
		fields["owner"] = "order owner is required"
	}
	if page < 1 {
		fields["page"] = "page must be a positive integer"
	}
	if limit < 1 {
		fields["limit"] = "limit must be a positive integer"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	orders, total, err := s.repo.FindByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.HistoryPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func toReservations(items []domain.OrderItem) []catalogports.Reservation {
	reservations := make([]catalogports.Reservation, 0, len(items))
	for _, item := range items {
		reservations = append(reservations, catalogports.Reservation{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return reservations
}

var _ ports.Service = (*Service)(nil)
