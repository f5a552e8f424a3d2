package gormstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persisted row shape for products.
type ProductModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (ProductModel) TableName() string { return "products" }

// OrderModel is the persisted row shape for order headers. Items are owned
// by the order; the foreign key cascades deletes at the schema level.
type OrderModel struct {
	ID          uint             `gorm:"primaryKey"`
	OrderDate   time.Time        `gorm:"not null"`
	Status      string           `gorm:"type:varchar(20);not null;default:'Pending'"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel is the persisted row shape for order line items. ProductID
// is a weak reference: products are referenced by identifier only.
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }
