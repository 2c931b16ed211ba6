package http

type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityRequest struct {
	// Zero and negative quantities remove the line.
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Notes         string `json:"notes"`
}

type CheckoutResponse struct {
	OrderNumber      string `json:"order_number"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	Subtotal         int64  `json:"subtotal"`
	ShippingCost     int64  `json:"shipping_cost"`
	Total            int64  `json:"total"`
	DisplayTotal     string `json:"display_total"`
}

type UpdateOrderRequest struct {
	Status string `json:"status"`
	// A nil tracking number means "leave unchanged"; an explicit empty
	// string clears it.
	TrackingNumber *string `json:"tracking_number"`
	Notes          string  `json:"notes"`
}

type ProductRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          int64    `json:"price" binding:"required,min=0"`
	Currency       string   `json:"currency"`
	Images         []string `json:"images"`
	Category       string   `json:"category"`
	InventoryCount int      `json:"inventory_count"`
	IsVisible      bool     `json:"is_visible"`
	IsSoldOut      bool     `json:"is_sold_out"`
}
