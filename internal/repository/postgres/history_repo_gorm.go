package postgres

import (
	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/repository"

	"gorm.io/gorm"
)

type historyRepo struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) repository.StatusHistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Append(entry *domain.OrderStatusHistory) error {
	return r.db.Create(entry).Error
}

func (r *historyRepo) FindByOrderID(orderID uint) ([]domain.OrderStatusHistory, error) {
	var out []domain.OrderStatusHistory
	err := r.db.
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
