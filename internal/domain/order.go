package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderItem is a denormalized snapshot of a product at order-creation time.
// Later catalog edits never affect a placed order.
type OrderItem struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductSlug  string `json:"product_slug"`
	ProductImage string `json:"product_image"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	if i == nil {
		return "[]", nil
	}
	b, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return errors.New("unsupported type for OrderItems")
	}
}

type ShippingAddress struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PostalCode   string `json:"postal_code,omitempty"`
}

func (a ShippingAddress) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for ShippingAddress")
	}
}

type Order struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	OrderNumber      string          `json:"order_number" gorm:"unique;not null"`
	CustomerName     string          `json:"customer_name" gorm:"not null"`
	CustomerEmail    string          `json:"customer_email" gorm:"not null;index"`
	CustomerPhone    string          `json:"customer_phone"`
	ShippingAddress  ShippingAddress `json:"shipping_address" gorm:"type:jsonb"`
	Items            OrderItems      `json:"items" gorm:"type:jsonb"`
	Subtotal         int64           `json:"subtotal" gorm:"not null"`
	ShippingCost     int64           `json:"shipping_cost" gorm:"not null"`
	Total            int64           `json:"total" gorm:"not null"`
	Currency         string          `json:"currency" gorm:"default:'NGN'"`
	Status           OrderStatus     `json:"status" gorm:"default:'pending'"`
	PaymentStatus    PaymentStatus   `json:"payment_status" gorm:"default:'pending'"`
	PaymentReference string          `json:"payment_reference" gorm:"uniqueIndex"`
	TrackingNumber   string          `json:"tracking_number"`
	Notes            string          `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// OrderStatusHistory is an append-only audit trail of order lifecycle
// transitions. Rows are never updated or deleted.
type OrderStatusHistory struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"not null"`
	Notes     string      `json:"notes" gorm:"type:text"`
	CreatedAt time.Time   `json:"created_at"`
}
