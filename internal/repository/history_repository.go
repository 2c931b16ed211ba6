package repository

import "letlalo-shop/internal/domain"

// StatusHistoryRepository is append-only; there is no update or
// delete on purpose.
type StatusHistoryRepository interface {
	Append(entry *domain.OrderStatusHistory) error
	// FindByOrderID returns entries newest first.
	FindByOrderID(orderID uint) ([]domain.OrderStatusHistory, error)
}
