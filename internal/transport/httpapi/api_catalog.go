package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/belandja/commerce-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/belandja/commerce-api/internal/domains/catalog/application"
	catalogports "github.com/belandja/commerce-api/internal/domains/catalog/ports"
	sharederrors "github.com/belandja/commerce-api/internal/shared/errors"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /api/products
// Add a new product to the catalog
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), catalogmapper.ToDomainProduct("", payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": catalogmapper.FromDomainProduct(product)})
}

// Get /api/products
// List all products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainProducts(products)})
}

// Get /api/products/:productId
// Find a product by ID
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainProduct(product)})
}

// Put /api/products/:productId
// Update an existing product
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	var payload catalogmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), catalogmapper.ToDomainProduct(c.Param("productId"), payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainProduct(product)})
}

// Delete /api/products/:productId
// Remove a product from the catalog
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), c.Param("productId")); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/categories
// Add a new category
func (api *CatalogAPI) CreateCategory(c *gin.Context) {
	var payload catalogmapper.CategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	category, err := api.service.CreateCategory(c.Request.Context(), catalogmapper.ToDomainCategory("", payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": catalogmapper.FromDomainCategory(category)})
}

// Get /api/categories
// List all categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainCategories(categories)})
}

// Get /api/categories/:categoryId
// Find a category by ID
func (api *CatalogAPI) GetCategory(c *gin.Context) {
	category, err := api.service.GetCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainCategory(category)})
}

// Put /api/categories/:categoryId
// Update an existing category
func (api *CatalogAPI) UpdateCategory(c *gin.Context) {
	var payload catalogmapper.CategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("request body must be valid JSON"))
		return
	}
	category, err := api.service.UpdateCategory(c.Request.Context(), catalogmapper.ToDomainCategory(c.Param("categoryId"), payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalogmapper.FromDomainCategory(category)})
}

// Delete /api/categories/:categoryId
// Remove a category
func (api *CatalogAPI) DeleteCategory(c *gin.Context) {
	if err := api.service.DeleteCategory(c.Request.Context(), c.Param("categoryId")); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, catalogports.ErrProductNotFound) {
		sharederrors.Respond(c, sharederrors.NewNotFoundProblem("product", c.Param("productId")))
		return
	}
	if errors.Is(err, catalogports.ErrCategoryNotFound) {
		sharederrors.Respond(c, sharederrors.NewNotFoundProblem("category", c.Param("categoryId")))
		return
	}
	if errors.Is(err, catalogapp.ErrInvalidInput) {
		sharederrors.Respond(c, sharederrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	sharederrors.RespondError(c, err)
}
