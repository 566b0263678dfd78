// internal/domain/cart/entity.go
package cart

import (
	"math"

	"github.com/google/uuid"
)

// Product is the immutable product snapshot embedded in a cart line.
// It is captured at add time and not re-fetched; the only refresh path
// is adding the same product again with fresh data.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	Description  string  `json:"description,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
}

// Item is one cart line: a product snapshot plus quantity and the id
// correlating it to a server-side order line
type Item struct {
	Product
	Quantity    int    `json:"quantity"`
	OrderItemID string `json:"orderItemId,omitempty"`
}

// Subtotal returns the line total
func (i Item) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// NormalizeQuantity coerces a quantity to an integer >= 1
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// NormalizePrice coerces a unit price to a finite non-negative number,
// defaulting to 0 for malformed inputs
func NormalizePrice(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

// ensureItemIDs assigns an order line id to any item missing one.
// Ids are stable once assigned and never reused across products.
// Runs before every state transition so callers always observe items
// with ids present.
func ensureItemIDs(items []Item) []Item {
	for i := range items {
		if items[i].OrderItemID == "" {
			items[i].OrderItemID = uuid.New().String()
		}
	}
	return items
}

// cloneItems returns a shallow copy so pure transforms never alias the
// authoritative snapshot
func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
