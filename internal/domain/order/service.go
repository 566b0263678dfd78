// internal/domain/order/service.go
package order

import "context"

// Service is the contract the cart engine consumes from the order backend.
// Implementations: the upstream commerce API client and the embedded
// database-backed store.
type Service interface {
	// CurrentDraftOrder returns the customer's single order in "cart"
	// status, or nil when none exists
	CurrentDraftOrder(ctx context.Context, customerID string) (*DraftOrder, error)

	// CreateOrder creates a new draft order and returns its id
	CreateOrder(ctx context.Context, input CreateInput) (string, error)

	// EditOrder replaces an existing draft order's lines and total
	EditOrder(ctx context.Context, input EditInput) error

	// CancelOrder voids a draft order whose cart emptied
	CancelOrder(ctx context.Context, orderID string) error
}
