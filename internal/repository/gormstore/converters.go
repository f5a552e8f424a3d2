package gormstore

import "github.com/dvillela/ecommerce-api/internal/domain"

// Converters map persisted rows to domain entities and back. Both directions
// are field-for-field so a round trip preserves every value.

func productToModel(p *domain.Product) ProductModel {
	return ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productToEntity(m ProductModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func orderToModel(o *domain.Order) OrderModel {
	return OrderModel{
		ID:          o.ID,
		OrderDate:   o.OrderDate,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
	}
}

func orderToEntity(m OrderModel) domain.Order {
	return domain.Order{
		ID:          m.ID,
		OrderDate:   m.OrderDate,
		Status:      domain.OrderStatus(m.Status),
		TotalAmount: m.TotalAmount,
	}
}

func orderToCompleteEntity(m OrderModel) domain.OrderWithItems {
	items := make([]domain.OrderItem, 0, len(m.Items))
	for _, im := range m.Items {
		items = append(items, orderItemToEntity(im))
	}
	return domain.OrderWithItems{
		Order: orderToEntity(m),
		Items: items,
	}
}

func orderItemToModel(i domain.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		Price:     i.Price,
	}
}

func orderItemToEntity(m OrderItemModel) domain.OrderItem {
	return domain.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Price:     m.Price,
	}
}
