// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, manager *cart.Manager, cfg *config.Config) {
	SetupCartRoutes(rg, manager, cfg)
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, manager *cart.Manager, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(manager, cfg)

	carts := rg.Group("/cart")
	carts.Use(middleware.OptionalAuth(cfg)) // Anonymous carts work without a token
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("/items", cartHandler.AddToCart)
		carts.PUT("/items/:productId", cartHandler.UpdateQuantity)
		carts.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/refresh", cartHandler.RefreshCart)
	}
}
