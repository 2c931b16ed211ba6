package services

import (
	"context"
	"log"
	"time"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/infra/rabbitmq"
	"letlalo-shop/internal/repository"
)

// OrderChangeset is an explicit partial update over an order's
// editable fields. A nil field means "unchanged".
type OrderChangeset struct {
	Status         *domain.OrderStatus
	TrackingNumber *string
}

func (c OrderChangeset) Empty() bool {
	return c.Status == nil && c.TrackingNumber == nil
}

func (c OrderChangeset) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if c.Status != nil {
		fields["status"] = *c.Status
	}
	if c.TrackingNumber != nil {
		fields["tracking_number"] = *c.TrackingNumber
	}
	return fields
}

// BuildChangeset diffs the stored order against the requested values
// field by field. Unchanged fields stay out of the update entirely. A
// blank status and a nil tracking number both mean "leave unchanged";
// an explicit empty tracking number clears the stored one.
func BuildChangeset(order *domain.Order, status domain.OrderStatus, trackingNumber *string) OrderChangeset {
	var c OrderChangeset
	if status != "" && status != order.Status {
		c.Status = &status
	}
	if trackingNumber != nil && *trackingNumber != order.TrackingNumber {
		c.TrackingNumber = trackingNumber
	}
	return c
}

type OrderAdminService struct {
	orders    repository.OrderRepository
	history   repository.StatusHistoryRepository
	publisher rabbitmq.PublisherInterface
}

func NewOrderAdminService(
	orders repository.OrderRepository,
	history repository.StatusHistoryRepository,
	publisher rabbitmq.PublisherInterface,
) *OrderAdminService {
	return &OrderAdminService{orders: orders, history: history, publisher: publisher}
}

func (s *OrderAdminService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.FindAll()
}

func (s *OrderAdminService) GetOrder(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrder applies the operator's edits. Exactly one history row is
// appended when the status changed; a tracking-number-only change
// appends none. Any status may transition to any other; transition
// legality is deliberately not checked.
func (s *OrderAdminService) UpdateOrder(ctx context.Context, id uint, status domain.OrderStatus, trackingNumber *string, notes string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	changeset := BuildChangeset(order, status, trackingNumber)
	if changeset.Empty() {
		return order, nil
	}

	if err := s.orders.UpdateFields(id, changeset.fields()); err != nil {
		return nil, err
	}

	if changeset.Status != nil {
		if err := s.history.Append(&domain.OrderStatusHistory{
			OrderID: id,
			Status:  *changeset.Status,
			Notes:   notes,
		}); err != nil {
			return nil, err
		}

		go func(from, to domain.OrderStatus) {
			evt := domain.OrderStatusChangedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				From:        from,
				To:          to,
				ChangedAt:   time.Now(),
			}
			if err := s.publisher.Publish(context.Background(), "order.status_changed", evt); err != nil {
				log.Printf("failed to publish order.status_changed event: %v", err)
			}
		}(order.Status, *changeset.Status)
	}

	return s.GetOrder(ctx, id)
}
