// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/interfaces/http/middleware"
)

// CartHandler exposes the cart controller to storefront frontends
type CartHandler struct {
	manager *cart.Manager
	config  *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(manager *cart.Manager, cfg *config.Config) *CartHandler {
	return &CartHandler{
		manager: manager,
		config:  cfg,
	}
}

// ProductPayload is the product snapshot supplied by the frontend at
// add time
type ProductPayload struct {
	ID           string  `json:"id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	UnitPrice    float64 `json:"unitPrice"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	CategoryName string  `json:"categoryName"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	Product  ProductPayload `json:"product" binding:"required"`
	Quantity int            `json:"quantity"`
}

// UpdateQuantityRequest represents a set-quantity request. Zero and
// negative quantities remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart state returned by every endpoint
type CartResponse struct {
	Items      []cart.Item `json:"items"`
	OrderID    string      `json:"orderId,omitempty"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
	IsSyncing  bool        `json:"isSyncing"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	ctrl := h.controller(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ctrl := h.controller(c)
	ctrl.AddToCart(c.Request.Context(), cart.Product{
		ID:           req.Product.ID,
		Name:         req.Product.Name,
		UnitPrice:    req.Product.UnitPrice,
		Description:  req.Product.Description,
		ImageURL:     req.Product.ImageURL,
		CategoryName: req.Product.CategoryName,
	}, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// UpdateQuantity handles PUT /cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ctrl := h.controller(c)
	ctrl.UpdateQuantity(c.Request.Context(), productID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// RemoveFromCart handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	ctrl := h.controller(c)
	ctrl.RemoveFromCart(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// RefreshCart handles POST /cart/refresh
func (h *CartHandler) RefreshCart(c *gin.Context) {
	ctrl := h.controller(c)
	ctrl.Refetch(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart refreshed successfully",
		"data":    h.cartResponse(ctrl),
	})
}

// controller resolves the session's cart controller and applies the
// request's identity to it: a newly-seen customer triggers the
// anonymous-to-authenticated handoff, a vanished one reverts the cart
// to the session store
func (h *CartHandler) controller(c *gin.Context) *cart.Controller {
	sessionID := h.getOrCreateSessionID(c)
	ctrl := h.manager.Controller(c.Request.Context(), sessionID)

	if customerID, ok := middleware.GetCustomerIDFromContext(c); ok {
		ctrl.SetIdentity(c.Request.Context(), customerID)
	} else {
		ctrl.ClearIdentity(c.Request.Context())
	}

	return ctrl
}

// cartResponse snapshots the controller state for the response body
func (h *CartHandler) cartResponse(ctrl *cart.Controller) CartResponse {
	return CartResponse{
		Items:      ctrl.Items(),
		OrderID:    ctrl.OrderID(),
		TotalItems: ctrl.TotalItems(),
		TotalPrice: ctrl.TotalPrice(),
		IsSyncing:  ctrl.IsSyncing(),
	}
}

// getOrCreateSessionID resolves the browsing session: an explicit
// X-Session-ID header wins, then the session cookie, then a fresh id
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return sessionID
	}

	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Set session cookie (24 hours)
		c.SetCookie("session_id", sessionID, 86400, "/", "", false, true)
	}

	return sessionID
}
