// internal/domain/cart/merge_test.go
package cart

import (
	"testing"
)

func item(id string, quantity int, price float64) Item {
	return Item{
		Product: Product{
			ID:        id,
			Name:      "Product " + id,
			UnitPrice: price,
		},
		Quantity:    quantity,
		OrderItemID: "line-" + id,
	}
}

func TestMergeItems_OverlappingIDsSumQuantities(t *testing.T) {
	primary := []Item{item("p1", 3, 10)}
	secondary := []Item{item("p1", 2, 12)}

	merged := MergeItems(primary, secondary)

	if len(merged) != 1 {
		t.Fatalf("expected 1 line, got %d", len(merged))
	}
	if merged[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", merged[0].Quantity)
	}
	// Primary side wins on snapshot fields
	if merged[0].UnitPrice != 10 {
		t.Fatalf("expected primary price 10, got %v", merged[0].UnitPrice)
	}
}

func TestMergeItems_NoDuplicateIDs(t *testing.T) {
	primary := []Item{item("p1", 1, 5), item("p2", 1, 5)}
	secondary := []Item{item("p2", 1, 5), item("p3", 1, 5), item("p1", 4, 5)}

	merged := MergeItems(primary, secondary)

	seen := make(map[string]bool)
	for _, m := range merged {
		if seen[m.ID] {
			t.Fatalf("duplicate line for id %s", m.ID)
		}
		seen[m.ID] = true
	}
	if len(merged) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(merged))
	}
}

func TestMergeItems_PreservesNonOverlappingItems(t *testing.T) {
	primary := []Item{item("p1", 2, 10)}
	secondary := []Item{item("p2", 7, 3.5)}

	merged := MergeItems(primary, secondary)

	if len(merged) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(merged))
	}
	if merged[0].ID != "p1" || merged[0].Quantity != 2 || merged[0].UnitPrice != 10 {
		t.Fatalf("primary item changed: %+v", merged[0])
	}
	if merged[1].ID != "p2" || merged[1].Quantity != 7 || merged[1].UnitPrice != 3.5 {
		t.Fatalf("secondary item changed: %+v", merged[1])
	}
}

func TestMergeItems_OrderingPrimaryFirst(t *testing.T) {
	primary := []Item{item("a", 1, 1), item("b", 1, 1)}
	secondary := []Item{item("c", 1, 1), item("a", 1, 1), item("d", 1, 1)}

	merged := MergeItems(primary, secondary)

	want := []string{"a", "b", "c", "d"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(merged))
	}
	for i, id := range want {
		if merged[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, merged[i].ID)
		}
	}
}

func TestMergeItems_OptionalFieldsPreferPrimary(t *testing.T) {
	primary := []Item{{
		Product:  Product{ID: "p1", Name: "Tour", Description: "server description"},
		Quantity: 1,
	}}
	secondary := []Item{{
		Product:  Product{ID: "p1", Name: "Tour", Description: "local description", ImageURL: "local.jpg", CategoryName: "day-trips"},
		Quantity: 1,
	}}

	merged := MergeItems(primary, secondary)

	if merged[0].Description != "server description" {
		t.Fatalf("expected primary description to win, got %q", merged[0].Description)
	}
	// Blank primary fields are filled from the secondary side
	if merged[0].ImageURL != "local.jpg" {
		t.Fatalf("expected secondary image to fill blank, got %q", merged[0].ImageURL)
	}
	if merged[0].CategoryName != "day-trips" {
		t.Fatalf("expected secondary category to fill blank, got %q", merged[0].CategoryName)
	}
}

func TestMergeItems_DuplicatesWithinOneListCollapse(t *testing.T) {
	primary := []Item{item("p1", 1, 2), item("p1", 2, 2)}

	merged := MergeItems(primary, nil)

	if len(merged) != 1 {
		t.Fatalf("expected 1 line, got %d", len(merged))
	}
	if merged[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", merged[0].Quantity)
	}
}

func TestFirstString(t *testing.T) {
	cases := []struct {
		name      string
		primary   string
		secondary string
		want      string
	}{
		{name: "primary wins when present", primary: "a", secondary: "b", want: "a"},
		{name: "secondary fills blank", primary: "", secondary: "b", want: "b"},
		{name: "both blank", primary: "", secondary: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := firstString(tc.primary, tc.secondary); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
