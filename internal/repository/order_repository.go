package repository

import (
	"time"

	"letlalo-shop/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	FindByID(id uint) (*domain.Order, error)
	FindByReference(reference string) (*domain.Order, error)
	FindByNumber(orderNumber string) (*domain.Order, error)
	// FindByNumberAndEmail matches the order number exactly and the
	// email case-insensitively.
	FindByNumberAndEmail(orderNumber, email string) (*domain.Order, error)
	FindAll() ([]domain.Order, error)
	FindPendingPaymentBefore(cutoff time.Time) ([]domain.Order, error)
	// UpdateFields applies a partial update to the given order.
	UpdateFields(id uint, fields map[string]interface{}) error
	// ConfirmPayment atomically flips an order from payment pending to
	// paid/confirmed, keyed by payment reference. The bool reports
	// whether this call performed the transition; a false with a
	// non-nil order means it was already confirmed.
	ConfirmPayment(reference string) (*domain.Order, bool, error)
}
