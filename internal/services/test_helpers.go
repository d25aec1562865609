package services

import (
	"time"

	"order-service/internal/domain"
)

func CreateMockOrder(id, userID string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:              id,
		UserID:          userID,
		Items:           CreateMockItems(),
		TotalAmount:     59.98,
		Status:          status,
		ShippingAddress: TestShippingAddress,
		CreatedAt:       time.Now(),
	}
}

func CreateMockItems() []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: TestProductID, Quantity: 2, Price: 29.99},
	}
}

const (
	TestOrderID         = "order-1"
	TestUserID          = "user-1"
	TestProductID       = "prod-1"
	TestShippingAddress = "123 Main St, City, Country"
)
