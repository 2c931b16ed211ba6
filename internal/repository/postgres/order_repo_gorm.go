package postgres

import (
	"errors"
	"log"
	"strings"
	"time"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	result := r.db.Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindByID(id uint) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByReference(reference string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Where("payment_reference = ?", reference).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByNumber(orderNumber string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Where("order_number = ?", orderNumber).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByNumberAndEmail(orderNumber, email string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.
		Where("order_number = ?", orderNumber).
		Where("LOWER(customer_email) = ?", strings.ToLower(email)).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindPendingPaymentBefore(cutoff time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.
		Where("payment_status = ?", domain.PaymentPending).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateFields(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&domain.Order{}).Where("id = ?", id).Updates(fields).Error
}

// ConfirmPayment is a conditional update keyed on the payment
// reference and the prior pending state, so concurrent success
// callbacks (redirect plus webhook, or two tabs) confirm at most once.
func (r *orderRepo) ConfirmPayment(reference string) (*domain.Order, bool, error) {
	result := r.db.Model(&domain.Order{}).
		Where("payment_reference = ?", reference).
		Where("payment_status = ?", domain.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": domain.PaymentPaid,
			"status":         domain.StatusConfirmed,
		})
	if result.Error != nil {
		return nil, false, result.Error
	}

	order, err := r.FindByReference(reference)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, nil
	}
	return order, result.RowsAffected > 0, nil
}
