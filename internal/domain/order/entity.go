// internal/domain/order/entity.go
package order

// OrderStatus represents the draft order status
type OrderStatus string

const (
	// StatusCart is the single draft order a customer accumulates items into
	StatusCart OrderStatus = "cart"
	// StatusCancelled marks a draft order voided after its cart emptied
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType represents how the order will be fulfilled
type OrderType string

const (
	TypeDelivery OrderType = "delivery"
)

// OriginStorefront is the fixed origin sentinel stamped on every order
// this service creates
const OriginStorefront = "storefront"

// Line represents one order line as exchanged with the order service
type Line struct {
	ID          string  `json:"_id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Count       int     `json:"count"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// DraftOrder represents a customer's server-side order in "cart" status
type DraftOrder struct {
	ID           string `json:"_id"`
	CustomerID   string `json:"customerId"`
	Lines        []Line `json:"items"`
	TotalAmount  float64 `json:"totalAmount"`
	DeliveryInfo map[string]interface{} `json:"deliveryInfo,omitempty"`
}

// CreateInput carries everything needed to create a new draft order
type CreateInput struct {
	CustomerID  string
	BranchID    string
	Lines       []Line
	TotalAmount float64
}

// EditInput carries a full replacement line set for an existing draft order
type EditInput struct {
	OrderID     string
	CustomerID  string
	BranchID    string
	Lines       []Line
	TotalAmount float64
}
