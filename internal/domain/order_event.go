package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Total       int64     `json:"total"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OrderConfirmedEvent struct {
	OrderID          uint      `json:"orderId"`
	OrderNumber      string    `json:"orderNumber"`
	PaymentReference string    `json:"paymentReference"`
	Total            int64     `json:"total"`
	ConfirmedAt      time.Time `json:"confirmedAt"`
}

type OrderStatusChangedEvent struct {
	OrderID     uint        `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
	ChangedAt   time.Time   `json:"changedAt"`
}
