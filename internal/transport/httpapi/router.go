// Package httpapi exposes the commerce API over HTTP using gin.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belandja/commerce-api/internal/platform/auth"
)

// Handlers groups the per-context APIs mounted on the router.
type Handlers struct {
	OrderAPI   OrderAPI
	CatalogAPI CatalogAPI
	UserAPI    UserAPI
}

// NewRouter builds the gin engine with all routes registered. Catalog reads
// are public; everything that mutates state or belongs to a user requires a
// verified bearer token.
func NewRouter(tokens *auth.Manager, handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	requireAuth := RequireAuth(tokens)

	api.POST("/auth/register", handlers.UserAPI.Register)
	api.POST("/auth/login", handlers.UserAPI.Login)
	api.GET("/auth/me", requireAuth, handlers.UserAPI.Me)
	api.PUT("/auth/profile", requireAuth, handlers.UserAPI.UpdateProfile)

	api.GET("/products", handlers.CatalogAPI.ListProducts)
	api.GET("/products/:productId", handlers.CatalogAPI.GetProduct)
	api.POST("/products", requireAuth, handlers.CatalogAPI.CreateProduct)
	api.PUT("/products/:productId", requireAuth, handlers.CatalogAPI.UpdateProduct)
	api.DELETE("/products/:productId", requireAuth, handlers.CatalogAPI.DeleteProduct)

	api.GET("/categories", handlers.CatalogAPI.ListCategories)
	api.GET("/categories/:categoryId", handlers.CatalogAPI.GetCategory)
	api.POST("/categories", requireAuth, handlers.CatalogAPI.CreateCategory)
	api.PUT("/categories/:categoryId", requireAuth, handlers.CatalogAPI.UpdateCategory)
	api.DELETE("/categories/:categoryId", requireAuth, handlers.CatalogAPI.DeleteCategory)

	api.POST("/orders", requireAuth, handlers.OrderAPI.PlaceOrder)
	api.GET("/orders", requireAuth, handlers.OrderAPI.ListOrders)

	return router
}
