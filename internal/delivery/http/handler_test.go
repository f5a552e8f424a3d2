package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
	"github.com/dvillela/ecommerce-api/internal/patterns"
	"github.com/dvillela/ecommerce-api/internal/repository"
	"github.com/dvillela/ecommerce-api/internal/service"
)

// In-memory repositories backing the full stack under test.

type memProductRepo struct {
	products map[uuid.UUID]domain.Product
}

func (m *memProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.products[p.ID] = *p
	created := *p
	return &created, nil
}

func (m *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memProductRepo) GetBulkByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProductRepo) GetAll(_ context.Context, skip, limit int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	if skip >= len(out) {
		return []domain.Product{}, nil
	}
	end := skip + limit
	if end > len(out) {
		end = len(out)
	}
	return out[skip:end], nil
}

func (m *memProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.products[p.ID] = *p
	updated := *p
	return &updated, nil
}

func (m *memProductRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

type memOrderRepo struct {
	orders map[uint]domain.Order
	items  *memOrderItemRepo
	nextID uint
}

func (m *memOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	m.nextID++
	created := *o
	created.ID = m.nextID
	m.orders[created.ID] = created
	return &created, nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memOrderRepo) GetAll(_ context.Context) ([]domain.OrderWithItems, error) {
	out := make([]domain.OrderWithItems, 0, len(m.orders))
	for id, o := range m.orders {
		withItems := domain.OrderWithItems{Order: o, Items: []domain.OrderItem{}}
		for _, item := range m.items.items {
			if item.OrderID == id {
				withItems.Items = append(withItems.Items, item)
			}
		}
		out = append(out, withItems)
	}
	return out, nil
}

func (m *memOrderRepo) DeleteByID(_ context.Context, id uint) error {
	delete(m.orders, id)
	return nil
}

type memOrderItemRepo struct {
	items  []domain.OrderItem
	nextID uint
}

func (m *memOrderItemRepo) CreateBulk(_ context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	created := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		m.nextID++
		item.ID = m.nextID
		m.items = append(m.items, item)
		created = append(created, item)
	}
	return created, nil
}

type memTxManager struct {
	repos repository.Repositories
}

func (m *memTxManager) WithinTx(_ context.Context, fn func(r repository.Repositories) error) error {
	return fn(m.repos)
}

func newTestServer(t *testing.T) (*httptest.Server, *resty.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	itemRepo := &memOrderItemRepo{}
	repos := repository.Repositories{
		Products:   &memProductRepo{products: make(map[uuid.UUID]domain.Product)},
		Orders:     &memOrderRepo{orders: make(map[uint]domain.Order), items: itemRepo},
		OrderItems: itemRepo,
	}
	handler := NewHandler(
		service.NewProductService(repos.Products),
		service.NewOrderService(repos, &memTxManager{repos: repos}),
		patterns.NewCircuitBreaker("Database", "ecommerce-api-test"),
		patterns.NewBulkhead(1, "database", "ecommerce-api-test"),
	)

	server := httptest.NewServer(handler.Router("ecommerce-api-test"))
	t.Cleanup(server.Close)

	client := resty.New().SetBaseURL(server.URL).SetHeader("Content-Type", "application/json")
	return server, client
}

func createTestProduct(t *testing.T, client *resty.Client, price string, quantity int) ProductResponse {
	t.Helper()
	var created ProductResponse
	resp, err := client.R().
		SetBody(CreateProductRequest{
			Name:        "Notebook",
			Description: "High performance notebook",
			Price:       decimal.RequireFromString(price),
			Quantity:    quantity,
		}).
		SetResult(&created).
		Post("/products")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	return created
}

func TestPing(t *testing.T) {
	_, client := newTestServer(t)

	resp, err := client.R().Get("/ping")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, "pong", resp.String())
}

func TestCircuitStatus(t *testing.T) {
	_, client := newTestServer(t)

	var status struct {
		DatabaseCircuit struct {
			Name  string `json:"name"`
			State string `json:"state"`
			Value int    `json:"value"`
		} `json:"database_circuit"`
		DatabaseBulkhead struct {
			Name string `json:"name"`
		} `json:"database_bulkhead"`
	}
	resp, err := client.R().SetResult(&status).Get("/circuit-status")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Equal(t, "Database", status.DatabaseCircuit.Name)
	require.Equal(t, "closed", status.DatabaseCircuit.State)
	require.Equal(t, 0, status.DatabaseCircuit.Value)
	require.Equal(t, "database", status.DatabaseBulkhead.Name)
}

func TestProductEndpoints(t *testing.T) {
	t.Run("CreateReturns201WithRepresentation", func(t *testing.T) {
		_, client := newTestServer(t)

		created := createTestProduct(t, client, "3999.99", 10)
		require.NotEqual(t, uuid.Nil, created.ID)
		require.True(t, created.Price.Equal(decimal.RequireFromString("3999.99")))
		require.Equal(t, 10, created.Quantity)
	})

	t.Run("CreateRejectsMalformedBody", func(t *testing.T) {
		_, client := newTestServer(t)

		var errResp ErrorResponse
		resp, err := client.R().
			SetBody(map[string]any{"description": "no name or price"}).
			SetError(&errResp).
			Post("/products")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode())
		require.Equal(t, apperrors.CodeValidation, errResp.Code)
	})

	t.Run("CreateRejectsNonPositivePrice", func(t *testing.T) {
		_, client := newTestServer(t)

		var errResp ErrorResponse
		resp, err := client.R().
			SetBody(map[string]any{"name": "Notebook", "price": -1, "quantity": 1}).
			SetError(&errResp).
			Post("/products")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode())
		require.Equal(t, apperrors.CodeValidation, errResp.Code)
	})

	t.Run("ListEmptyReturnsEmptyArray", func(t *testing.T) {
		_, client := newTestServer(t)

		var products []ProductResponse
		resp, err := client.R().SetResult(&products).Get("/products")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		require.Empty(t, products)
	})

	t.Run("GetUnknownIDReturns404", func(t *testing.T) {
		_, client := newTestServer(t)

		var errResp ErrorResponse
		resp, err := client.R().SetError(&errResp).Get("/products/" + uuid.NewString())
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode())
		require.Equal(t, apperrors.CodeNotFound, errResp.Code)
	})

	t.Run("GetMalformedIDReturns400", func(t *testing.T) {
		_, client := newTestServer(t)

		resp, err := client.R().Get("/products/not-a-uuid")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})

	t.Run("PatchUpdatesSubsetOfFields", func(t *testing.T) {
		_, client := newTestServer(t)
		created := createTestProduct(t, client, "100.00", 5)

		var updated ProductResponse
		resp, err := client.R().
			SetBody(map[string]any{"quantity": 7}).
			SetResult(&updated).
			Patch("/products/" + created.ID.String())
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		require.Equal(t, 7, updated.Quantity)
		require.Equal(t, created.Name, updated.Name)
	})

	t.Run("DeleteThenGetReturns404", func(t *testing.T) {
		_, client := newTestServer(t)
		created := createTestProduct(t, client, "100.00", 5)

		resp, err := client.R().Delete("/products/" + created.ID.String())
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())

		resp, err = client.R().Get("/products/" + created.ID.String())
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode())
	})
}

func TestOrderEndpoints(t *testing.T) {
	t.Run("CreatePricesFromLiveProductData", func(t *testing.T) {
		_, client := newTestServer(t)
		product := createTestProduct(t, client, "50.00", 10)

		var order OrderResponse
		resp, err := client.R().
			SetBody(CreateOrderRequest{Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: 2},
			}}).
			SetResult(&order).
			Post("/orders/create")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode())
		require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("100.00")))
		require.Equal(t, string(domain.OrderStatusPending), order.Status)
		require.Len(t, order.Items, 1)
		require.True(t, order.Items[0].Price.Equal(product.Price))
		require.Equal(t, 2, order.Items[0].Quantity)
	})

	t.Run("PlainOrdersRouteAlsoCreates", func(t *testing.T) {
		_, client := newTestServer(t)
		product := createTestProduct(t, client, "10.00", 3)

		resp, err := client.R().
			SetBody(CreateOrderRequest{Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: 1},
			}}).
			Post("/orders")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode())
	})

	t.Run("InsufficientStockReturns400NamingProduct", func(t *testing.T) {
		_, client := newTestServer(t)
		product := createTestProduct(t, client, "10.00", 1)

		var errResp ErrorResponse
		resp, err := client.R().
			SetBody(CreateOrderRequest{Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: 5},
			}}).
			SetError(&errResp).
			Post("/orders/create")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode())
		require.Equal(t, apperrors.CodeValidation, errResp.Code)
		require.Contains(t, errResp.Message, product.ID.String())

		var orders []OrderResponse
		resp, err = client.R().SetResult(&orders).Get("/orders")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		require.Empty(t, orders)
	})

	t.Run("EmptyItemListReturns400", func(t *testing.T) {
		_, client := newTestServer(t)

		var errResp ErrorResponse
		resp, err := client.R().
			SetBody(map[string]any{"items": []any{}}).
			SetError(&errResp).
			Post("/orders/create")
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode())
		require.Equal(t, apperrors.CodeValidation, errResp.Code)
	})

	t.Run("ListReturnsOrdersWithItems", func(t *testing.T) {
		_, client := newTestServer(t)
		product := createTestProduct(t, client, "25.00", 10)

		resp, err := client.R().
			SetBody(CreateOrderRequest{Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: 2},
			}}).
			Post("/orders/create")
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode())

		var orders []OrderResponse
		resp, err = client.R().SetResult(&orders).Get("/orders")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Items, 1)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		_, client := newTestServer(t)

		resp, err := client.R().Delete("/orders/999")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
	})
}
