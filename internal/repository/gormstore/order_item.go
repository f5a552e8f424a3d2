package gormstore

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
)

type orderItemRepository struct {
	store *Store
}

func (r *orderItemRepository) CreateBulk(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	models := make([]OrderItemModel, 0, len(items))
	for _, item := range items {
		models = append(models, orderItemToModel(item))
	}

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Create(&models).Error
	})
	if err != nil {
		log.WithField("order_id", items[0].OrderID).Error("Database error bulk-creating order items: ", err)
		return nil, apperrors.Internal("database error creating order items", err)
	}

	created := make([]domain.OrderItem, 0, len(models))
	for _, m := range models {
		created = append(created, orderItemToEntity(m))
	}
	return created, nil
}
