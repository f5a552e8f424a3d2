package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
	"github.com/dvillela/ecommerce-api/internal/metrics"
	"github.com/dvillela/ecommerce-api/internal/repository"
)

// OrderItemInput is one requested (product, quantity) pair. Prices are never
// accepted from the client; they come from live product data.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderService manages order use cases.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

// NewOrderService creates an OrderService.
func NewOrderService(repos repository.Repositories, tx repository.TxManager) *OrderService {
	return &OrderService{
		products: repos.Products,
		orders:   repos.Orders,
		tx:       tx,
	}
}

// Create prices and persists an order from the requested items. Products are
// fetched in one batched query; requested items whose product does not exist
// are skipped. A requested quantity above the product's on-hand quantity
// fails the whole operation before any write. The order header and its line
// items are persisted inside one transaction.
func (s *OrderService) Create(ctx context.Context, requested []OrderItemInput) (*domain.OrderWithItems, error) {
	if err := validateOrderInput(requested); err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(requested))
	for _, item := range requested {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetBulkByIDs(ctx, ids)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	order, items, err := priceOrder(products, requested)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	var result domain.OrderWithItems
	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		created, err := r.Orders.Create(ctx, order)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = created.ID
		}
		createdItems, err := r.OrderItems.CreateBulk(ctx, items)
		if err != nil {
			return err
		}
		result = domain.OrderWithItems{Order: *created, Items: createdItems}
		return nil
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		return nil, apperrors.From(err)
	}

	metrics.OrdersTotal.WithLabelValues("created").Inc()
	metrics.OrderTotalAmount.Observe(result.TotalAmount.InexactFloat64())
	log.WithFields(log.Fields{
		"order_id": result.ID,
		"items":    len(result.Items),
		"total":    result.TotalAmount,
	}).Info("Order created")

	return &result, nil
}

// GetAll returns every order with its items.
func (s *OrderService) GetAll(ctx context.Context) ([]domain.OrderWithItems, error) {
	return s.orders.GetAll(ctx)
}

// DeleteByID removes an order. Deleting an order that does not exist is a
// success: the lookup short-circuits and no delete statement is issued.
// Line items go with the order via the schema-level cascade.
func (s *OrderService) DeleteByID(ctx context.Context, id uint) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		log.WithField("order_id", id).Info("Order absent, delete is a no-op")
		return nil
	}
	return s.orders.DeleteByID(ctx, id)
}

// priceOrder matches requested items against the fetched products, checks
// stock sufficiency, and computes line subtotals and the order total from
// live prices. Requested items with no matching product are ignored.
func priceOrder(products []domain.Product, requested []OrderItemInput) (*domain.Order, []domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(requested))
	total := decimal.Zero

	for _, product := range products {
		match, ok := findRequestedItem(requested, product.ID)
		if !ok {
			continue
		}
		if match.Quantity > product.Quantity {
			return nil, nil, apperrors.Validationf("insufficient quantity for product ID %s", product.ID)
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(match.Quantity)))
		total = total.Add(subtotal)
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  match.Quantity,
			Price:     product.Price,
		})
	}

	order := &domain.Order{
		OrderDate:   time.Now().UTC(),
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
	}
	return order, items, nil
}

func findRequestedItem(requested []OrderItemInput, productID uuid.UUID) (OrderItemInput, bool) {
	for _, item := range requested {
		if item.ProductID == productID {
			return item, true
		}
	}
	return OrderItemInput{}, false
}

// validateOrderInput performs fail-fast validation before any repository call.
func validateOrderInput(requested []OrderItemInput) error {
	if len(requested) == 0 {
		return apperrors.Validationf("order must contain at least one item")
	}
	for i, item := range requested {
		if item.ProductID == uuid.Nil {
			return apperrors.Validationf("item %d: product_id is required", i)
		}
		if item.Quantity <= 0 {
			return apperrors.Validationf("item %d: quantity must be greater than 0", i)
		}
	}
	return nil
}
