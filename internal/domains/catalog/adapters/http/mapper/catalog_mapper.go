package mapper

import (
	"time"

	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
)

// ProductRequest is the product create/update payload.
type ProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Qty         int     `json:"qty"`
	CategoryID  string  `json:"categoryId"`
}

// ProductResponse is the transport representation of a product.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Qty         int       `json:"qty"`
	CategoryID  string    `json:"categoryId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryRequest is the category create/update payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse is the transport representation of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(id string, req ProductRequest) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Price:       req.Price,
		Qty:         req.Qty,
		CategoryID:  req.CategoryID,
	}
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *domain.Product) ProductResponse {
	if product == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		SKU:         product.SKU,
		Description: product.Description,
		Price:       product.Price,
		Qty:         product.Qty,
		CategoryID:  product.CategoryID,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromDomainProducts maps a list of products.
func FromDomainProducts(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, FromDomainProduct(product))
	}
	return out
}

// ToDomainCategory converts a transport category into the catalog domain model.
func ToDomainCategory(id string, req CategoryRequest) *domain.Category {
	return &domain.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	}
}

// FromDomainCategory converts a domain category to the transport representation.
func FromDomainCategory(category *domain.Category) CategoryResponse {
	if category == nil {
		return CategoryResponse{}
	}
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// FromDomainCategories maps a list of categories.
func FromDomainCategories(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, FromDomainCategory(category))
	}
	return out
}
