// Package repository declares the persistence contracts the services depend
// on. Services hold these interfaces only; the storage technology lives
// behind them.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvillela/ecommerce-api/internal/domain"
)

// ProductRepository handles persistence for Products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// GetBulkByIDs fetches all products matching ids in one query. IDs with
	// no matching row are simply absent from the result.
	GetBulkByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	GetAll(ctx context.Context, skip, limit int) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// OrderRepository handles persistence for order headers.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id uint) (*domain.Order, error)
	// GetAll returns every order with its items eager-loaded.
	GetAll(ctx context.Context) ([]domain.OrderWithItems, error)
	DeleteByID(ctx context.Context, id uint) error
}

// OrderItemRepository handles persistence for order line items. Items are
// only ever written together with their order, so the contract is the bulk
// insert alone.
type OrderItemRepository interface {
	// CreateBulk inserts all items in one statement and returns them with
	// their store-assigned identifiers.
	CreateBulk(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error)
}

// Repositories bundles the repository set bound to one connection or
// transaction.
type Repositories struct {
	Products   ProductRepository
	Orders     OrderRepository
	OrderItems OrderItemRepository
}

// TxManager runs a unit of work inside a single database transaction. The
// Repositories passed to fn are bound to that transaction; returning an
// error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r Repositories) error) error
}
