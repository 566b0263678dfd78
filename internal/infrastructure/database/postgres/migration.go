// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/your-org/storefront-cart/internal/infrastructure/orderstore"
	"gorm.io/gorm"
)

// Migration handles database migrations for the embedded order store
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the order store models
func (m *Migration) RunAutoMigrations() error {
	models := []interface{}{
		&orderstore.Order{},
		&orderstore.OrderLine{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates the indexes the draft-order lookups depend on
func (m *Migration) CreateIndexes() error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_draft_orders_customer_status ON draft_orders (customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_draft_order_lines_order_product ON draft_order_lines (order_id, product_id)",
	}

	for _, stmt := range statements {
		if err := m.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
