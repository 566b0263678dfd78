// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/pkg/auth"
)

// customerIDKey is the gin context key holding the resolved customer id
const customerIDKey = "customer_id"

// OptionalAuth resolves the visitor's customer identity when a valid
// bearer token is present. A missing or invalid token is the anonymous
// case, not an error: the cart works either way, so the request always
// proceeds.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			// Invalid token; continue as anonymous
			c.Next()
			return
		}

		c.Set(customerIDKey, claims.CustomerID)
		c.Next()
	}
}

// GetCustomerIDFromContext extracts the resolved customer id from the
// gin context; ok is false for anonymous visitors
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(customerIDKey)
	if !exists {
		return "", false
	}
	customerID, ok := value.(string)
	if !ok || customerID == "" {
		return "", false
	}
	return customerID, true
}
