package gormstore

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dvillela/ecommerce-api/internal/apperrors"
	"github.com/dvillela/ecommerce-api/internal/domain"
)

type orderRepository struct {
	store *Store
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	model := orderToModel(order)

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Create(&model).Error
	})
	if err != nil {
		log.Error("Database error creating order: ", err)
		return nil, apperrors.Internal("database error creating order", err)
	}

	created := orderToEntity(model)
	log.WithField("order_id", created.ID).Info("Order created")
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel
	found := true

	err := r.store.guard(func() error {
		result := r.store.db.WithContext(ctx).First(&model, id)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			found = false
			return nil
		}
		return result.Error
	})
	if err != nil {
		log.WithField("order_id", id).Error("Database error fetching order: ", err)
		return nil, apperrors.Internal("database error fetching order", err)
	}
	if !found {
		return nil, nil
	}

	entity := orderToEntity(model)
	return &entity, nil
}

func (r *orderRepository) GetAll(ctx context.Context) ([]domain.OrderWithItems, error) {
	var models []OrderModel

	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Preload("Items").Find(&models).Error
	})
	if err != nil {
		log.Error("Database error listing orders: ", err)
		return nil, apperrors.Internal("database error listing orders", err)
	}

	orders := make([]domain.OrderWithItems, 0, len(models))
	for _, m := range models {
		orders = append(orders, orderToCompleteEntity(m))
	}
	return orders, nil
}

func (r *orderRepository) DeleteByID(ctx context.Context, id uint) error {
	err := r.store.guard(func() error {
		return r.store.db.WithContext(ctx).Delete(&OrderModel{}, id).Error
	})
	if err != nil {
		log.WithField("order_id", id).Error("Database error deleting order: ", err)
		return apperrors.Internal("database error deleting order", err)
	}

	log.WithField("order_id", id).Info("Order deleted")
	return nil
}
