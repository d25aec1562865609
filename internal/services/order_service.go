package services

import (
	"context"
	"errors"
	"log"
	"time"

	"order-service/internal/domain"
	rabbit "order-service/internal/infra/rabbitmq"
	"order-service/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbit.PublisherInterface

	nowFunc func() time.Time
	idFunc  func() string
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
		nowFunc:   time.Now,
		idFunc:    uuid.NewString,
	}
}

// CreateOrder computes the total over items in input order, assigns a fresh id
// and returns the stored order. New orders always start out pending.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []domain.OrderItem, shippingAddress string) (*domain.Order, error) {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	order := &domain.Order{
		ID:              s.idFunc(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          domain.StatusPending,
		ShippingAddress: shippingAddress,
		CreatedAt:       s.nowFunc(),
		UpdatedAt:       nil,
	}

	if err := s.repo.Insert(order); err != nil {
		return nil, err
	}

	go s.publishOrderEvent(context.Background(), order, "order.created")

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll()
}

// ListOrdersForUser returns the user's orders in insertion order. A user with
// no orders gets an empty slice, not an error.
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.FindByUserID(userID)
}

// UpdateStatus moves an order to status. Any recognized status may follow any
// other, including a no-op to the same value; updated_at is set either way.
// The order is looked up before the status is checked, so an unknown id wins
// over an unrecognized status.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	now := s.nowFunc()
	order.Status = status
	order.UpdatedAt = &now

	if err := s.repo.Update(order); err != nil {
		return nil, err
	}

	go s.publishOrderEvent(context.Background(), order, "order.status_updated")

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) (*domain.Order, error) {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, ErrOrderNotFound
	}
	return removed, nil
}

func (s *OrderService) publishOrderEvent(ctx context.Context, order *domain.Order, eventType string) {
	if s.publisher == nil {
		return
	}

	evt := domain.OrderEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Type:        eventType,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Occurred:    s.nowFunc(),
	}

	if err := s.publisher.Publish(ctx, eventType, evt); err != nil {
		log.Printf("failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
