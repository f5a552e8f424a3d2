// Package service holds the application use cases. Each service orchestrates
// one entity's workflows over the repository contracts and owns the business
// rule validation.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
	"github.com/dvillela/ecommerce-api/internal/metrics"
	"github.com/dvillela/ecommerce-api/internal/repository"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// CreateProductInput carries the fields needed to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// UpdateProductInput carries a partial product update; nil fields are left
// unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
}

// ProductService manages product use cases.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a ProductService.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create validates the input, mints the identifier and timestamps, and
// persists the product.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := validateProductFields(input.Name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	metrics.ProductStockLevel.WithLabelValues(created.ID.String()).Set(float64(created.Quantity))
	log.WithFields(log.Fields{
		"product_id": created.ID,
		"name":       created.Name,
	}).Info("Product created")

	return created, nil
}

// List returns products with offset/limit pagination. Out-of-range values
// fall back to skip=0, limit=10; limit is capped at 100.
func (s *ProductService) List(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.products.GetAll(ctx, skip, limit)
}

// GetByID returns the product or a not-found error.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFoundf("product with ID %s not found", id)
	}
	return product, nil
}

// Update applies a partial update to an existing product. Fields present in
// the input are validated with the same rules as creation.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if err := validateProductFields(product.Name, product.Price, product.Quantity); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	metrics.ProductStockLevel.WithLabelValues(updated.ID.String()).Set(float64(updated.Quantity))
	return updated, nil
}

// DeleteByID removes the product, failing with not-found when absent.
func (s *ProductService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.products.DeleteByID(ctx, id)
}

// validateProductFields performs fail-fast validation of the business rules.
func validateProductFields(name string, price decimal.Decimal, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Validationf("product name is required")
	}
	if !price.IsPositive() {
		return apperrors.Validationf("price must be greater than zero")
	}
	if quantity < 0 {
		return apperrors.Validationf("quantity cannot be negative")
	}
	return nil
}
