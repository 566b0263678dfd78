// internal/infrastructure/orderstore/entity.go
package orderstore

import (
	"time"

	"gorm.io/gorm"
)

// Order is the persisted draft order for single-binary deployments
type Order struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string         `gorm:"not null;index;size:64" json:"customer_id"`
	BranchID    string         `gorm:"size:64" json:"branch_id"`
	Status      string         `gorm:"not null;default:'cart';index;size:20" json:"status"`
	Type        string         `gorm:"not null;size:20" json:"type"`
	Origin      string         `gorm:"not null;size:20" json:"origin"`
	TotalAmount float64        `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "draft_orders"
}

// OrderLine is one persisted line of a draft order
type OrderLine struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string    `gorm:"not null;index;size:36" json:"order_id"`
	ProductID   string    `gorm:"not null;index;size:64" json:"product_id"`
	ProductName string    `gorm:"not null;size:255" json:"product_name"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Count       int       `gorm:"not null;default:1" json:"count"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (OrderLine) TableName() string {
	return "draft_order_lines"
}
