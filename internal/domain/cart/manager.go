// internal/domain/cart/manager.go
package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-cart/internal/domain/order"
)

// StoreFactory builds the session-scoped store for one browsing session
type StoreFactory func(sessionID string) Store

// Manager hands out one controller per browsing session so every
// consumer within a session observes the same cart
type Manager struct {
	orders   order.Service
	branchID string
	stores   StoreFactory
	log      *logrus.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a controller registry
func NewManager(orders order.Service, branchID string, stores StoreFactory, log *logrus.Logger) *Manager {
	return &Manager{
		orders:      orders,
		branchID:    branchID,
		stores:      stores,
		log:         log,
		controllers: make(map[string]*Controller),
	}
}

// Controller returns the controller owning the given session's cart,
// creating it on first use
func (m *Manager) Controller(ctx context.Context, sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctrl, ok := m.controllers[sessionID]; ok {
		return ctrl
	}

	ctrl := NewController(ctx, m.stores(sessionID), m.orders, m.branchID, m.log)
	m.controllers[sessionID] = ctrl
	return ctrl
}

// Drop forgets a session's controller, releasing its in-memory cart.
// The session store itself is left untouched.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, sessionID)
}
