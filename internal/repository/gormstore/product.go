package gormstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
)

type productRepository struct {
	store *Store
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := productToModel(product)

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Create(&model).Error
	})
	if err != nil {
		log.WithField("product_id", product.ID).Error("Database error creating product: ", err)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflictf("product with ID %s already exists", product.ID)
		}
		return nil, apperrors.Internal("database error creating product", err)
	}

	created := productToEntity(model)
	log.WithField("product_id", created.ID).Info("Product created")
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var model ProductModel
	found := true

	err := r.store.guard(func() error {
		result := r.store.db.WithContext(ctx).First(&model, "id = ?", id)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			found = false
			return nil
		}
		return result.Error
	})
	if err != nil {
		log.WithField("product_id", id).Error("Database error fetching product: ", err)
		return nil, apperrors.Internal("database error fetching product", err)
	}
	if !found {
		return nil, nil
	}

	entity := productToEntity(model)
	return &entity, nil
}

func (r *productRepository) GetBulkByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	var models []ProductModel

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error
	})
	if err != nil {
		log.Error("Database error fetching products by ids: ", err)
		return nil, apperrors.Internal("database error fetching products", err)
	}

	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, productToEntity(m))
	}
	return products, nil
}

func (r *productRepository) GetAll(ctx context.Context, skip, limit int) ([]domain.Product, error) {
	var models []ProductModel

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&models).Error
	})
	if err != nil {
		log.Error("Database error listing products: ", err)
		return nil, apperrors.Internal("database error listing products", err)
	}

	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, productToEntity(m))
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := productToModel(product)

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Save(&model).Error
	})
	if err != nil {
		log.WithField("product_id", product.ID).Error("Database error updating product: ", err)
		return nil, apperrors.Internal("database error updating product", err)
	}

	updated := productToEntity(model)
	log.WithField("product_id", updated.ID).Info("Product updated")
	return &updated, nil
}

func (r *productRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Delete(&ProductModel{}, "id = ?", id).Error
	})
	if err != nil {
		log.WithField("product_id", id).Error("Database error deleting product: ", err)
		return apperrors.Internal("database error deleting product", err)
	}

	log.WithField("product_id", id).Info("Product deleted")
	return nil
}
