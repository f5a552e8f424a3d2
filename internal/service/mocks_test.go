package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dvillela/ecommerce-api/internal/domain"
	"github.com/dvillela/ecommerce-api/internal/repository"
)

type mockProductRepository struct {
	products []domain.Product

	createCalls int
	bulkCalls   int
	lastSkip    int
	lastLimit   int
	failWith    error
	updateCalls int
	deleteCalls int
}

func (m *mockProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.createCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.products = append(m.products, *product)
	created := *product
	return &created, nil
}

func (m *mockProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for i := range m.products {
		if m.products[i].ID == id {
			found := m.products[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepository) GetBulkByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	m.bulkCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []domain.Product
	for _, p := range m.products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *mockProductRepository) GetAll(_ context.Context, skip, limit int) ([]domain.Product, error) {
	m.lastSkip, m.lastLimit = skip, limit
	if m.failWith != nil {
		return nil, m.failWith
	}
	if skip >= len(m.products) {
		return []domain.Product{}, nil
	}
	end := skip + limit
	if end > len(m.products) {
		end = len(m.products)
	}
	return append([]domain.Product{}, m.products[skip:end]...), nil
}

func (m *mockProductRepository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.updateCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	for i := range m.products {
		if m.products[i].ID == product.ID {
			m.products[i] = *product
		}
	}
	updated := *product
	return &updated, nil
}

func (m *mockProductRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.deleteCalls++
	if m.failWith != nil {
		return m.failWith
	}
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			break
		}
	}
	return nil
}

type mockOrderRepository struct {
	orders map[uint]domain.Order
	nextID uint

	createCalls int
	deleteCalls int
	calls       []string
	failWith    error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uint]domain.Order), nextID: 1}
}

func (m *mockOrderRepository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	m.createCalls++
	m.calls = append(m.calls, "create")
	if m.failWith != nil {
		return nil, m.failWith
	}
	created := *order
	created.ID = m.nextID
	m.nextID++
	m.orders[created.ID] = created
	return &created, nil
}

func (m *mockOrderRepository) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	m.calls = append(m.calls, "get")
	if m.failWith != nil {
		return nil, m.failWith
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (m *mockOrderRepository) GetAll(_ context.Context) ([]domain.OrderWithItems, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]domain.OrderWithItems, 0, len(m.orders))
	for _, order := range m.orders {
		out = append(out, domain.OrderWithItems{Order: order, Items: []domain.OrderItem{}})
	}
	return out, nil
}

func (m *mockOrderRepository) DeleteByID(_ context.Context, id uint) error {
	m.deleteCalls++
	m.calls = append(m.calls, "delete")
	if m.failWith != nil {
		return m.failWith
	}
	delete(m.orders, id)
	return nil
}

type mockOrderItemRepository struct {
	items  []domain.OrderItem
	nextID uint

	bulkCalls int
	failWith  error
}

func (m *mockOrderItemRepository) CreateBulk(_ context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	m.bulkCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	created := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		m.nextID++
		item.ID = m.nextID
		m.items = append(m.items, item)
		created = append(created, item)
	}
	return created, nil
}

// mockTxManager runs the unit of work directly against the bound mocks.
type mockTxManager struct {
	repos    repository.Repositories
	txCalls  int
	failWith error
}

func (m *mockTxManager) WithinTx(_ context.Context, fn func(r repository.Repositories) error) error {
	m.txCalls++
	if m.failWith != nil {
		return m.failWith
	}
	return fn(m.repos)
}
