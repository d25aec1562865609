package mysql

import (
	"errors"
	"log"

	"order-service/internal/domain"
	"order-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Order("seq ASC").Find(&out).Error; err != nil {
		log.Printf("FindAll error: %v", err)
		return nil, err
	}
	if out == nil {
		out = []domain.Order{}
	}
	return out, nil
}

func (r *orderRepo) FindByID(id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUserID(userID string) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Where("user_id = ?", userID).Order("seq ASC").Find(&out).Error; err != nil {
		log.Printf("FindByUserID error: %v", err)
		return nil, err
	}
	if out == nil {
		out = []domain.Order{}
	}
	return out, nil
}

func (r *orderRepo) Insert(order *domain.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		log.Printf("Insert error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) Update(order *domain.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		log.Printf("Update error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) Delete(id string) (*domain.Order, error) {
	existing, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if err := r.db.Delete(&domain.Order{}, "id = ?", id).Error; err != nil {
		log.Printf("Delete error: %v", err)
		return nil, err
	}
	return existing, nil
}
