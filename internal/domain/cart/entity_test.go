// internal/domain/cart/entity_test.go
package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "negative floors to one", in: -3, want: 1},
		{name: "zero floors to one", in: 0, want: 1},
		{name: "one passes through", in: 1, want: 1},
		{name: "large passes through", in: 99, want: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuantity(tt.in))
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "nan becomes zero", in: math.NaN(), want: 0},
		{name: "positive infinity becomes zero", in: math.Inf(1), want: 0},
		{name: "negative infinity becomes zero", in: math.Inf(-1), want: 0},
		{name: "negative becomes zero", in: -4.2, want: 0},
		{name: "zero passes through", in: 0, want: 0},
		{name: "positive passes through", in: 12.5, want: 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrice(tt.in))
		})
	}
}

func TestEnsureItemIDs(t *testing.T) {
	items := []Item{
		{Product: Product{ID: "p1"}, Quantity: 1},
		{Product: Product{ID: "p2"}, Quantity: 1, OrderItemID: "existing"},
	}

	out := ensureItemIDs(items)

	assert.NotEmpty(t, out[0].OrderItemID)
	assert.Equal(t, "existing", out[1].OrderItemID, "assigned ids are stable")

	// Repeat runs never reassign
	first := out[0].OrderItemID
	out = ensureItemIDs(out)
	assert.Equal(t, first, out[0].OrderItemID)
}

func TestCloneItemsDoesNotAlias(t *testing.T) {
	original := []Item{{Product: Product{ID: "p1"}, Quantity: 1}}

	clone := cloneItems(original)
	clone[0].Quantity = 99

	assert.Equal(t, 1, original[0].Quantity)
}

func TestSubtotal(t *testing.T) {
	item := Item{Product: Product{UnitPrice: 2.5}, Quantity: 4}
	assert.Equal(t, 10.0, item.Subtotal())
}
