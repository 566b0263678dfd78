// internal/domain/cart/sync.go
package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/domain/order"
)

// untitledProductName is the display fallback for server order lines
// whose product snapshot lost its name
const untitledProductName = "Untitled product"

// SyncEngine keeps a server-side draft order consistent with the
// in-memory cart. It decides the correct operation per sync
// (create, edit, cancel or none), owns the tracked order id, and
// converts every failure into a boolean outcome so callers can fall
// back to the session store without surfacing errors.
type SyncEngine struct {
	orders   order.Service
	branchID string
	log      *logrus.Logger

	mu         sync.Mutex
	customerID string
	orderID    string

	syncing atomic.Bool
}

// NewSyncEngine creates a sync engine for one cart
func NewSyncEngine(orders order.Service, branchID string, log *logrus.Logger) *SyncEngine {
	return &SyncEngine{
		orders:   orders,
		branchID: branchID,
		log:      log,
	}
}

// SetCustomer records the authenticated customer identity
func (e *SyncEngine) SetCustomer(customerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customerID = customerID
}

// ClearCustomer reverts the engine to anonymous mode. The tracked order
// belongs to the departed customer and becomes inaccessible, so it is
// dropped along with the identity.
func (e *SyncEngine) ClearCustomer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customerID = ""
	e.orderID = ""
}

// CustomerID returns the current customer identity, empty when anonymous
func (e *SyncEngine) CustomerID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.customerID
}

// Authenticated reports whether a customer identity is present
func (e *SyncEngine) Authenticated() bool {
	return e.CustomerID() != ""
}

// OrderID returns the tracked server-side draft order id, empty when none
func (e *SyncEngine) OrderID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orderID
}

// IsSyncing reports whether a server sync is in flight, so callers can
// disable destructive actions mid-flight
func (e *SyncEngine) IsSyncing() bool {
	return e.syncing.Load()
}

// Persist pushes the given items to the order backend, choosing between
// create, edit, cancel and no-op. Returns false on any failure; tracked
// state is left untouched so the caller retains the optimistic items
// and sync retries implicitly on the next mutation.
func (e *SyncEngine) Persist(ctx context.Context, items []Item) bool {
	customerID := e.CustomerID()
	if customerID == "" {
		// Anonymous: no server call is possible, caller falls back
		// to the session store
		return false
	}

	e.syncing.Store(true)
	defer e.syncing.Store(false)

	lines, total := linesFromItems(items)
	orderID := e.OrderID()

	switch {
	case orderID == "" && len(lines) == 0:
		// Nothing tracked, nothing to persist
		return true

	case orderID == "":
		newID, err := e.orders.CreateOrder(ctx, order.CreateInput{
			CustomerID:  customerID,
			BranchID:    e.branchID,
			Lines:       lines,
			TotalAmount: total,
		})
		if err != nil {
			e.log.WithError(err).WithField("customer_id", customerID).
				Error("Failed to create draft order")
			return false
		}
		e.mu.Lock()
		e.orderID = newID
		e.mu.Unlock()

	case len(lines) > 0:
		err := e.orders.EditOrder(ctx, order.EditInput{
			OrderID:     orderID,
			CustomerID:  customerID,
			BranchID:    e.branchID,
			Lines:       lines,
			TotalAmount: total,
		})
		if err != nil {
			e.log.WithError(err).WithField("order_id", orderID).
				Error("Failed to edit draft order")
			return false
		}

	default:
		// Cart emptied while an order exists: cancel, don't delete
		if err := e.orders.CancelOrder(ctx, orderID); err != nil {
			e.log.WithError(err).WithField("order_id", orderID).
				Error("Failed to cancel draft order")
			return false
		}
		e.mu.Lock()
		e.orderID = ""
		e.mu.Unlock()
	}

	e.refreshOrderView(ctx, customerID)
	return true
}

// Reconcile runs the session-start handoff once a customer identity is
// available. It returns the item list the cart should adopt and whether
// the session store may be cleared (true only after the merged state
// reached the server).
func (e *SyncEngine) Reconcile(ctx context.Context, local []Item) ([]Item, bool) {
	customerID := e.CustomerID()
	if customerID == "" {
		// Anonymous: the session store stays the source of truth
		return ensureItemIDs(local), false
	}

	current, err := e.orders.CurrentDraftOrder(ctx, customerID)
	if err != nil {
		e.log.WithError(err).WithField("customer_id", customerID).
			Error("Failed to fetch current draft order, staying on session store")
		return ensureItemIDs(local), false
	}

	if current == nil {
		// No server order yet: adopt the local cart and try to push it
		items := ensureItemIDs(local)
		return items, e.Persist(ctx, items)
	}

	e.mu.Lock()
	e.orderID = current.ID
	e.mu.Unlock()

	serverItems := itemsFromOrder(current)
	if len(local) == 0 {
		// Server is already authoritative, no sync call needed
		return serverItems, false
	}

	merged := MergeItems(serverItems, ensureItemIDs(local))
	return merged, e.Persist(ctx, merged)
}

// Refetch re-queries the server's current draft order and returns its
// lines as cart items. UI-triggered refresh only; no reconciliation.
func (e *SyncEngine) Refetch(ctx context.Context) ([]Item, error) {
	customerID := e.CustomerID()
	if customerID == "" {
		return nil, nil
	}

	current, err := e.orders.CurrentDraftOrder(ctx, customerID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if current != nil {
		e.orderID = current.ID
	} else {
		e.orderID = ""
	}
	e.mu.Unlock()

	if current == nil {
		return []Item{}, nil
	}
	return itemsFromOrder(current), nil
}

// refreshOrderView keeps the cached server order view warm after a
// mutation. Best effort: failures are logged and ignored.
func (e *SyncEngine) refreshOrderView(ctx context.Context, customerID string) {
	current, err := e.orders.CurrentDraftOrder(ctx, customerID)
	if err != nil {
		e.log.WithError(err).WithField("customer_id", customerID).
			Debug("Failed to refresh draft order view")
		return
	}
	if current != nil {
		e.mu.Lock()
		e.orderID = current.ID
		e.mu.Unlock()
	}
}

// linesFromItems builds the server line list and total amount. Items
// without an assigned order line id are skipped; the ensure-ids step
// runs before every sync so none should exist.
func linesFromItems(items []Item) ([]order.Line, float64) {
	lines := make([]order.Line, 0, len(items))
	var total float64
	for _, item := range items {
		if item.OrderItemID == "" {
			continue
		}
		lines = append(lines, order.Line{
			ID:          item.OrderItemID,
			ProductID:   item.ID,
			ProductName: item.Name,
			UnitPrice:   item.UnitPrice,
			Count:       item.Quantity,
			Description: item.Description,
			ImageURL:    item.ImageURL,
		})
		total += item.Subtotal()
	}
	return lines, total
}

// itemsFromOrder converts server order lines into cart items. Lines
// without a resolvable product id are dropped.
func itemsFromOrder(o *order.DraftOrder) []Item {
	items := make([]Item, 0, len(o.Lines))
	for _, line := range o.Lines {
		if line.ProductID == "" {
			continue
		}
		name := line.ProductName
		if name == "" {
			name = untitledProductName
		}
		items = append(items, Item{
			Product: Product{
				ID:          line.ProductID,
				Name:        name,
				UnitPrice:   NormalizePrice(line.UnitPrice),
				Description: line.Description,
				ImageURL:    line.ImageURL,
			},
			Quantity:    NormalizeQuantity(line.Count),
			OrderItemID: line.ID,
		})
	}
	return items
}
