// internal/infrastructure/orderstore/store.go
package orderstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/storefront-cart/internal/domain/order"
	"gorm.io/gorm"
)

// Store is the database-backed order.Service used when no upstream
// commerce API is configured. It implements only the draft-order
// operations the cart engine consumes; order management beyond that
// lives elsewhere.
type Store struct {
	db *gorm.DB
}

// NewStore creates a database-backed order store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CurrentDraftOrder returns the customer's newest order in "cart"
// status, or nil when none exists
func (s *Store) CurrentDraftOrder(ctx context.Context, customerID string) (*order.DraftOrder, error) {
	var record Order
	err := s.db.WithContext(ctx).
		Preload("Lines").
		Where("customer_id = ? AND status = ?", customerID, string(order.StatusCart)).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft order: %w", err)
	}

	return toDraftOrder(&record), nil
}

// CreateOrder creates a new draft order and returns its id
func (s *Store) CreateOrder(ctx context.Context, input order.CreateInput) (string, error) {
	record := Order{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		BranchID:    input.BranchID,
		Status:      string(order.StatusCart),
		Type:        string(order.TypeDelivery),
		Origin:      order.OriginStorefront,
		TotalAmount: input.TotalAmount,
		Lines:       toOrderLines("", input.Lines),
	}
	for i := range record.Lines {
		record.Lines[i].OrderID = record.ID
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to create draft order: %w", err)
	}
	return record.ID, nil
}

// EditOrder replaces an existing draft order's lines and total
func (s *Store) EditOrder(ctx context.Context, input order.EditInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record Order
		err := tx.Where("id = ? AND status = ?", input.OrderID, string(order.StatusCart)).
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("draft order %s not found", input.OrderID)
		}
		if err != nil {
			return fmt.Errorf("failed to load draft order: %w", err)
		}

		if err := tx.Where("order_id = ?", record.ID).Delete(&OrderLine{}).Error; err != nil {
			return fmt.Errorf("failed to drop previous lines: %w", err)
		}

		lines := toOrderLines(record.ID, input.Lines)
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return fmt.Errorf("failed to store new lines: %w", err)
			}
		}

		updates := map[string]interface{}{
			"total_amount": input.TotalAmount,
		}
		if input.BranchID != "" {
			updates["branch_id"] = input.BranchID
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update draft order: %w", err)
		}
		return nil
	})
}

// CancelOrder voids a draft order whose cart emptied. The record is
// kept (cancelled, not deleted) so the order history stays intact.
func (s *Store) CancelOrder(ctx context.Context, orderID string) error {
	result := s.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND status = ?", orderID, string(order.StatusCart)).
		Update("status", string(order.StatusCancelled))
	if result.Error != nil {
		return fmt.Errorf("failed to cancel draft order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("draft order %s not found", orderID)
	}
	return nil
}

// toDraftOrder converts a persisted order into the contract shape
func toDraftOrder(record *Order) *order.DraftOrder {
	lines := make([]order.Line, 0, len(record.Lines))
	for _, line := range record.Lines {
		lines = append(lines, order.Line{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Count:       line.Count,
			Description: line.Description,
			ImageURL:    line.ImageURL,
		})
	}
	return &order.DraftOrder{
		ID:          record.ID,
		CustomerID:  record.CustomerID,
		Lines:       lines,
		TotalAmount: record.TotalAmount,
	}
}

// toOrderLines converts contract lines into persisted rows, generating
// ids for lines that arrive without one
func toOrderLines(orderID string, lines []order.Line) []OrderLine {
	out := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		id := line.ID
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, OrderLine{
			ID:          id,
			OrderID:     orderID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Count:       line.Count,
			Description: line.Description,
			ImageURL:    line.ImageURL,
		})
	}
	return out
}
