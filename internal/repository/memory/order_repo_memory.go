package memory

import (
	"sync"

	"order-service/internal/domain"
	"order-service/internal/repository"
)

// orderRepo keeps all orders in a slice so insertion order is preserved.
// The mutex serializes mutations; gin handlers run on multiple goroutines.
type orderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
}

func NewOrderRepository() repository.OrderRepository {
	return &orderRepo{}
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *orderRepo) FindByID(id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *orderRepo) FindByUserID(userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Order, 0)
	for i := range r.orders {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *orderRepo) Insert(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, *order)
	return nil
}

func (r *orderRepo) Update(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			r.orders[i] = *order
			return nil
		}
	}
	// id vanished between find and update; nothing to persist
	return nil
}

func (r *orderRepo) Delete(id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			removed := r.orders[i]
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return &removed, nil
		}
	}
	return nil, nil
}
