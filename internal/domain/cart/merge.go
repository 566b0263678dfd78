// internal/domain/cart/merge.go
package cart

// MergeItems reconciles two independently-evolved item lists into one
// canonical list. The primary side (server-origin) is the base: its
// items keep their order and their field values win on conflicts.
// Secondary items colliding on product id contribute their quantity;
// secondary-only items are appended in their original order.
//
// The result contains exactly one line per product id. The function
// performs no I/O and is deterministic given its inputs.
func MergeItems(primary, secondary []Item) []Item {
	merged := make([]Item, 0, len(primary)+len(secondary))
	index := make(map[string]int, len(primary))

	for _, item := range primary {
		if at, ok := index[item.ID]; ok {
			// Duplicate ids inside one list collapse the same way
			merged[at].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}

	for _, item := range secondary {
		at, ok := index[item.ID]
		if !ok {
			index[item.ID] = len(merged)
			merged = append(merged, item)
			continue
		}

		merged[at].Quantity += item.Quantity
		merged[at].Description = firstString(merged[at].Description, item.Description)
		merged[at].ImageURL = firstString(merged[at].ImageURL, item.ImageURL)
		merged[at].CategoryName = firstString(merged[at].CategoryName, item.CategoryName)
	}

	return merged
}

// firstString encodes the optional-field precedence: the existing
// (primary) value wins whenever present
func firstString(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
