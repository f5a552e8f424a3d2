package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"
)

// Order is the order header. The ID is assigned by the store on insert.
type Order struct {
	ID          uint
	OrderDate   time.Time
	Status      OrderStatus
	TotalAmount decimal.Decimal
}

// OrderItem is one priced line belonging to exactly one order. Price is the
// unit price snapshot taken from the product at order-creation time.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// OrderWithItems is an order header together with its line items, as
// returned by eager-loading reads and by order creation.
type OrderWithItems struct {
	Order
	Items []OrderItem
}
