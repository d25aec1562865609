package repository

import (
	"order-service/internal/domain"
)

// OrderRepository is the authoritative store of orders. Lookups return
// (nil, nil) when the id is absent; the service layer decides what that means.
type OrderRepository interface {
	FindAll() ([]domain.Order, error)
	FindByID(id string) (*domain.Order, error)
	FindByUserID(userID string) ([]domain.Order, error)
	Insert(order *domain.Order) error
	Update(order *domain.Order) error
	Delete(id string) (*domain.Order, error)
}
