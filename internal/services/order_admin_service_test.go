package services

import (
	"context"
	"testing"
	"time"

	"letlalo-shop/internal/domain"
	"letlalo-shop/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBuildChangeset(t *testing.T) {
	tests := []struct {
		name           string
		storedTracking string
		status         domain.OrderStatus
		trackingNumber *string
		expectEmpty    bool
		expectStatus   bool
		expectTracking bool
	}{
		{name: "nothing changed", status: domain.StatusPending, expectEmpty: true},
		{name: "status changed", status: domain.StatusShipped, expectStatus: true},
		{name: "tracking changed", status: domain.StatusPending, trackingNumber: strPtr("NG123"), expectTracking: true},
		{name: "both changed", status: domain.StatusShipped, trackingNumber: strPtr("NG123"), expectStatus: true, expectTracking: true},
		{name: "blank status means unchanged", status: "", expectEmpty: true},
		{name: "nil tracking leaves stored value", storedTracking: "NG-OLD", status: domain.StatusPending, expectEmpty: true},
		{name: "explicit blank clears tracking", storedTracking: "NG-OLD", status: domain.StatusPending, trackingNumber: strPtr(""), expectTracking: true},
		{name: "same tracking means unchanged", storedTracking: "NG-OLD", status: domain.StatusPending, trackingNumber: strPtr("NG-OLD"), expectEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{
				ID:             1,
				Status:         domain.StatusPending,
				TrackingNumber: tt.storedTracking,
			}

			c := BuildChangeset(order, tt.status, tt.trackingNumber)

			assert.Equal(t, tt.expectEmpty, c.Empty())
			assert.Equal(t, tt.expectStatus, c.Status != nil)
			assert.Equal(t, tt.expectTracking, c.TrackingNumber != nil)
			if tt.expectStatus {
				assert.Equal(t, tt.status, *c.Status)
			}
			if tt.expectTracking {
				assert.Equal(t, *tt.trackingNumber, *c.TrackingNumber)
			}
		})
	}
}

func TestOrderAdminService_UpdateOrder_StatusChangeAppendsHistory(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	stored := &domain.Order{ID: 1, OrderNumber: "LTL-1-AAAA", Status: domain.StatusPending}
	updated := &domain.Order{ID: 1, OrderNumber: "LTL-1-AAAA", Status: domain.StatusShipped}

	orders.On("FindByID", uint(1)).Return(stored, nil).Once()
	orders.On("UpdateFields", uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		status, ok := fields["status"]
		return ok && status == domain.StatusShipped && len(fields) == 1
	})).Return(nil)
	history.On("Append", mock.MatchedBy(func(entry *domain.OrderStatusHistory) bool {
		return entry.OrderID == 1 &&
			entry.Status == domain.StatusShipped &&
			entry.Notes == "dispatched via courier"
	})).Return(nil).Once()
	orders.On("FindByID", uint(1)).Return(updated, nil).Once()
	publisher.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil).Maybe()

	service := NewOrderAdminService(orders, history, publisher)
	result, err := service.UpdateOrder(context.Background(), 1, domain.StatusShipped, nil, "dispatched via courier")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, result.Status)

	orders.AssertExpectations(t)
	history.AssertExpectations(t)
	history.AssertNumberOfCalls(t, "Append", 1)
}

func TestOrderAdminService_UpdateOrder_TrackingOnlySkipsHistory(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	stored := &domain.Order{ID: 1, Status: domain.StatusShipped, TrackingNumber: ""}

	orders.On("FindByID", uint(1)).Return(stored, nil)
	orders.On("UpdateFields", uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		tracking, ok := fields["tracking_number"]
		_, hasStatus := fields["status"]
		return ok && tracking == "NG-TRACK-42" && !hasStatus
	})).Return(nil)

	service := NewOrderAdminService(orders, history, publisher)
	_, err := service.UpdateOrder(context.Background(), 1, domain.StatusShipped, strPtr("NG-TRACK-42"), "ignored")

	assert.NoError(t, err)
	history.AssertNotCalled(t, "Append", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderAdminService_UpdateOrder_OmittedTrackingLeftIntact(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	stored := &domain.Order{ID: 1, Status: domain.StatusShipped, TrackingNumber: "NG-TRACK-42"}
	delivered := &domain.Order{ID: 1, Status: domain.StatusDelivered, TrackingNumber: "NG-TRACK-42"}

	orders.On("FindByID", uint(1)).Return(stored, nil).Once()
	orders.On("UpdateFields", uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
		_, hasTracking := fields["tracking_number"]
		return !hasTracking && fields["status"] == domain.StatusDelivered
	})).Return(nil)
	history.On("Append", mock.Anything).Return(nil)
	orders.On("FindByID", uint(1)).Return(delivered, nil).Once()
	publisher.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil).Maybe()

	service := NewOrderAdminService(orders, history, publisher)
	result, err := service.UpdateOrder(context.Background(), 1, domain.StatusDelivered, nil, "")

	assert.NoError(t, err)
	assert.Equal(t, "NG-TRACK-42", result.TrackingNumber)
	orders.AssertExpectations(t)
}

func TestOrderAdminService_UpdateOrder_NoChangeWritesNothing(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	stored := &domain.Order{ID: 1, Status: domain.StatusShipped, TrackingNumber: "NG-TRACK-42"}
	orders.On("FindByID", uint(1)).Return(stored, nil)

	service := NewOrderAdminService(orders, history, publisher)
	result, err := service.UpdateOrder(context.Background(), 1, domain.StatusShipped, strPtr("NG-TRACK-42"), "")

	assert.NoError(t, err)
	assert.Equal(t, stored, result)
	orders.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "Append", mock.Anything)
}

func TestOrderAdminService_UpdateOrder_NotFound(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	orders.On("FindByID", uint(99)).Return(nil, nil)

	service := NewOrderAdminService(orders, history, publisher)
	result, err := service.UpdateOrder(context.Background(), 99, domain.StatusShipped, nil, "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderAdminService_UpdateOrder_AnyTransitionAllowed(t *testing.T) {
	// Transition legality is deliberately unchecked: delivered back to
	// pending is accepted.
	orders := new(mocks.MockOrderRepository)
	history := new(mocks.MockStatusHistoryRepository)
	publisher := new(mocks.MockPublisher)

	stored := &domain.Order{ID: 1, Status: domain.StatusDelivered}
	reverted := &domain.Order{ID: 1, Status: domain.StatusPending}

	orders.On("FindByID", uint(1)).Return(stored, nil).Once()
	orders.On("UpdateFields", uint(1), mock.Anything).Return(nil)
	history.On("Append", mock.Anything).Return(nil)
	orders.On("FindByID", uint(1)).Return(reverted, nil).Once()
	publisher.On("Publish", mock.Anything, "order.status_changed", mock.Anything).Return(nil).Maybe()

	service := NewOrderAdminService(orders, history, publisher)
	result, err := service.UpdateOrder(context.Background(), 1, domain.StatusPending, nil, "")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Status)
}

func TestOrderService_TrackOrder(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockStatusHistoryRepository)
		expectedError error
	}{
		{
			name: "found with history",
			setupMocks: func(orders *mocks.MockOrderRepository, history *mocks.MockStatusHistoryRepository) {
				order := &domain.Order{ID: 1, OrderNumber: "LTL-1-AAAA", CustomerEmail: "ada@example.com"}
				orders.On("FindByNumberAndEmail", "LTL-1-AAAA", "Ada@Example.COM").Return(order, nil)
				history.On("FindByOrderID", uint(1)).Return([]domain.OrderStatusHistory{
					{OrderID: 1, Status: domain.StatusConfirmed, CreatedAt: time.Now()},
				}, nil)
			},
		},
		{
			name: "not found",
			setupMocks: func(orders *mocks.MockOrderRepository, history *mocks.MockStatusHistoryRepository) {
				orders.On("FindByNumberAndEmail", "LTL-1-AAAA", "Ada@Example.COM").Return(nil, nil)
			},
			expectedError: ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			history := new(mocks.MockStatusHistoryRepository)
			tt.setupMocks(orders, history)

			service := NewOrderService(orders, history)
			result, err := service.TrackOrder(context.Background(), "LTL-1-AAAA", "Ada@Example.COM")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result.Order)
				assert.Len(t, result.History, 1)
			}

			orders.AssertExpectations(t)
		})
	}
}
