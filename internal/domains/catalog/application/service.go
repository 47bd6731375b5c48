package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
	"github.com/belandja/commerce-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if _, err := s.repo.GetProduct(ctx, product.ID); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveCategory(ctx, category)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	if _, err := s.repo.GetCategory(ctx, category.ID); err != nil {
		return nil, err
	}
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveCategory(ctx, category)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

var _ ports.Service = (*Service)(nil)
