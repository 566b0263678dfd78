// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store is the durable session cart used as the write target for
// anonymous visitors and as the fallback cache at all times.
// None of the methods report failures: the cart must keep working in
// memory when the store is unavailable, so errors are logged and
// swallowed at this boundary.
type Store interface {
	// Read returns the persisted items, or an empty list on missing,
	// corrupt, or non-array-shaped data
	Read(ctx context.Context) []Item
	// Write persists the items; an empty list removes the stored key
	// entirely instead of storing an empty array
	Write(ctx context.Context, items []Item)
	// Clear removes the stored key
	Clear(ctx context.Context)
}

// cmdable is the subset of the Redis client the session store uses;
// narrow so tests can swap in a mock
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// redisStore persists one serialized item list per browsing session
// under a single well-known key
type redisStore struct {
	client    cmdable
	sessionID string
	ttl       time.Duration
	log       *logrus.Logger
}

// NewRedisStore creates a session cart store backed by Redis
func NewRedisStore(client cmdable, sessionID string, ttl time.Duration, log *logrus.Logger) Store {
	return &redisStore{
		client:    client,
		sessionID: sessionID,
		ttl:       ttl,
		log:       log,
	}
}

func (s *redisStore) key() string {
	return fmt.Sprintf("cart:session:%s", s.sessionID)
}

// Read loads and coerces the persisted item list. Entries are coerced
// field by field; a malformed entry is dropped individually rather than
// invalidating the whole store.
func (s *redisStore) Read(ctx context.Context) []Item {
	data, err := s.client.Get(ctx, s.key()).Result()
	if err == redis.Nil {
		return []Item{}
	}
	if err != nil {
		s.log.WithError(err).WithField("session_id", s.sessionID).
			Warn("Failed to read session cart, treating as empty")
		return []Item{}
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		s.log.WithError(err).WithField("session_id", s.sessionID).
			Warn("Malformed session cart payload, treating as empty")
		return []Item{}
	}

	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		item, ok := coerceItem(entry)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// Write stores the items, removing the key entirely when the list is empty
func (s *redisStore) Write(ctx context.Context, items []Item) {
	if len(items) == 0 {
		s.Clear(ctx)
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.log.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to serialize session cart")
		return
	}

	if err := s.client.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		s.log.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to persist session cart")
	}
}

// Clear removes the stored key
func (s *redisStore) Clear(ctx context.Context) {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		s.log.WithError(err).WithField("session_id", s.sessionID).
			Error("Failed to clear session cart")
	}
}

// coerceItem validates and coerces one stored entry. Entries without a
// non-empty string id are dropped; quantity and price fall back to the
// cart invariants; optional fields survive only as strings.
func coerceItem(entry map[string]interface{}) (Item, bool) {
	id, ok := entry["id"].(string)
	if !ok || id == "" {
		return Item{}, false
	}

	item := Item{
		Product: Product{
			ID:           id,
			Name:         stringField(entry, "name"),
			UnitPrice:    NormalizePrice(numberField(entry, "unitPrice")),
			Description:  stringField(entry, "description"),
			ImageURL:     stringField(entry, "imageUrl"),
			CategoryName: stringField(entry, "categoryName"),
		},
		Quantity:    NormalizeQuantity(intField(entry, "quantity")),
		OrderItemID: stringField(entry, "orderItemId"),
	}
	return item, true
}

func stringField(entry map[string]interface{}, key string) string {
	if v, ok := entry[key].(string); ok {
		return v
	}
	return ""
}

func numberField(entry map[string]interface{}, key string) float64 {
	if v, ok := entry[key].(float64); ok {
		return v
	}
	return 0
}

func intField(entry map[string]interface{}, key string) int {
	return int(numberField(entry, key))
}

// noopStore is used when no session store is available (health probes,
// non-interactive execution); the cart then lives purely in memory
type noopStore struct{}

// NewNoopStore creates a store that persists nothing
func NewNoopStore() Store {
	return noopStore{}
}

func (noopStore) Read(ctx context.Context) []Item         { return nil }
func (noopStore) Write(ctx context.Context, items []Item) {}
func (noopStore) Clear(ctx context.Context)               {}
