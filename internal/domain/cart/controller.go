// internal/domain/cart/controller.go
package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/domain/order"
)

// Controller is the single mutation/query surface UI collaborators see.
// It owns the authoritative in-memory item list for one browsing
// session; nothing else mutates it. Every mutation funnels through one
// shared apply path: pure transform, ensure ids, swap the snapshot
// synchronously, then best-effort persistence (server when
// authenticated, session store otherwise or on failure).
type Controller struct {
	store  Store
	engine *SyncEngine
	log    *logrus.Logger

	// state guards the snapshot only; mutations swap it before any
	// server work begins so rapid successive calls apply in call order
	state sync.Mutex
	items []Item

	// syncMu serializes persistence so at most one sync per cart is in
	// flight; each flush re-reads the snapshot, coalescing to the
	// latest state
	syncMu sync.Mutex
}

// NewController creates a controller for one session, seeded from
// whatever the session store holds
func NewController(ctx context.Context, store Store, orders order.Service, branchID string, log *logrus.Logger) *Controller {
	c := &Controller{
		store:  store,
		engine: NewSyncEngine(orders, branchID, log),
		log:    log,
	}
	c.items = ensureItemIDs(store.Read(ctx))
	return c
}

// Items returns a copy of the current cart lines
func (c *Controller) Items() []Item {
	c.state.Lock()
	defer c.state.Unlock()
	return cloneItems(c.items)
}

// OrderID returns the tracked server-side draft order id, empty when none
func (c *Controller) OrderID() string {
	return c.engine.OrderID()
}

// TotalItems returns the sum of quantities across all lines
func (c *Controller) TotalItems() int {
	c.state.Lock()
	defer c.state.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity across all lines
func (c *Controller) TotalPrice() float64 {
	c.state.Lock()
	defer c.state.Unlock()
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// IsSyncing reports whether a server sync is in flight
func (c *Controller) IsSyncing() bool {
	return c.engine.IsSyncing()
}

// AddToCart adds a product to the cart. An existing line for the same
// product gains the quantity and has its snapshot overwritten with the
// freshly supplied product data.
func (c *Controller) AddToCart(ctx context.Context, product Product, quantity int) {
	quantity = NormalizeQuantity(quantity)
	product.UnitPrice = NormalizePrice(product.UnitPrice)

	c.apply(ctx, func(items []Item) []Item {
		for i := range items {
			if items[i].ID == product.ID {
				items[i].Product = product
				items[i].Quantity += quantity
				return items
			}
		}
		return append(items, Item{Product: product, Quantity: quantity})
	})
}

// RemoveFromCart removes the line for the given product. Idempotent:
// removing an absent product is not an error.
func (c *Controller) RemoveFromCart(ctx context.Context, productID string) {
	c.apply(ctx, func(items []Item) []Item {
		out := items[:0]
		for _, item := range items {
			if item.ID != productID {
				out = append(out, item)
			}
		}
		return out
	})
}

// UpdateQuantity sets the quantity on the matching line. A quantity of
// zero or less removes the line; an unknown product is a no-op.
func (c *Controller) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveFromCart(ctx, productID)
		return
	}

	c.apply(ctx, func(items []Item) []Item {
		for i := range items {
			if items[i].ID == productID {
				items[i].Quantity = quantity
				break
			}
		}
		return items
	})
}

// ClearCart resets the cart to an empty list. With a tracked order this
// drives the cancel path on the next sync.
func (c *Controller) ClearCart(ctx context.Context) {
	c.apply(ctx, func(items []Item) []Item {
		return []Item{}
	})
}

// Refetch re-queries the server's current draft order and adopts its
// lines. No-op when anonymous; does not re-run reconciliation.
func (c *Controller) Refetch(ctx context.Context) {
	if !c.engine.Authenticated() {
		return
	}

	items, err := c.engine.Refetch(ctx)
	if err != nil {
		c.log.WithError(err).Warn("Failed to refetch server cart, keeping current state")
		return
	}

	c.state.Lock()
	c.items = ensureItemIDs(items)
	c.state.Unlock()
}

// SetIdentity transitions the cart to an authenticated customer and
// runs the anonymous-to-authenticated handoff: the server's draft order
// is merged with the in-memory cart, the merged state is pushed back,
// and the session store is cleared only once the server holds it.
// Calling it again with the same customer is a no-op.
func (c *Controller) SetIdentity(ctx context.Context, customerID string) {
	if customerID == "" || c.engine.CustomerID() == customerID {
		return
	}

	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	c.engine.SetCustomer(customerID)

	local := c.Items()
	items, serverOwned := c.engine.Reconcile(ctx, local)

	c.state.Lock()
	c.items = items
	c.state.Unlock()

	if serverOwned {
		c.store.Clear(ctx)
	} else if len(local) > 0 {
		// Reconciliation could not reach the server; keep the merged
		// state in the session store so nothing is lost
		c.store.Write(ctx, items)
	}
}

// ClearIdentity reverts to anonymous mode: the server order becomes
// inaccessible and the cart reloads from the session store
func (c *Controller) ClearIdentity(ctx context.Context) {
	if !c.engine.Authenticated() {
		return
	}

	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	c.engine.ClearCustomer()

	c.state.Lock()
	c.items = ensureItemIDs(c.store.Read(ctx))
	c.state.Unlock()
}

// apply is the shared update path every mutator uses: run the pure
// transform against a copy, ensure ids, swap the snapshot, then flush
func (c *Controller) apply(ctx context.Context, transform func([]Item) []Item) {
	c.state.Lock()
	next := ensureItemIDs(transform(cloneItems(c.items)))
	c.items = next
	c.state.Unlock()

	c.flush(ctx)
}

// flush performs the best-effort persistence of the latest snapshot.
// Sync failures never propagate: the optimistic state stands and the
// session store keeps a durable copy until a future sync succeeds.
func (c *Controller) flush(ctx context.Context) {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()

	items := c.Items()

	if !c.engine.Authenticated() {
		c.store.Write(ctx, items)
		return
	}

	if c.engine.Persist(ctx, items) {
		c.store.Clear(ctx)
	} else {
		c.store.Write(ctx, items)
	}
}
