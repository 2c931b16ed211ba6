package services

import (
	"context"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/repository"
)

// OrderWithHistory is the order-confirmation / tracking view model.
type OrderWithHistory struct {
	Order   *domain.Order               `json:"order"`
	History []domain.OrderStatusHistory `json:"history"`
}

// OrderService serves shopper-facing order reads: the confirmation
// page keyed by order number and the track-order lookup.
type OrderService struct {
	orders  repository.OrderRepository
	history repository.StatusHistoryRepository
}

func NewOrderService(orders repository.OrderRepository, history repository.StatusHistoryRepository) *OrderService {
	return &OrderService{orders: orders, history: history}
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderWithHistory, error) {
	order, err := s.orders.FindByNumber(orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.withHistory(order)
}

// TrackOrder requires the exact order number plus the customer email,
// matched case-insensitively, so order numbers alone don't leak order
// details.
func (s *OrderService) TrackOrder(ctx context.Context, orderNumber, email string) (*OrderWithHistory, error) {
	order, err := s.orders.FindByNumberAndEmail(orderNumber, email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.withHistory(order)
}

func (s *OrderService) withHistory(order *domain.Order) (*OrderWithHistory, error) {
	entries, err := s.history.FindByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderWithHistory{Order: order, History: entries}, nil
}
