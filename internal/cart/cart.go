package cart

import "letlalo-shop/internal/domain"

// Line pairs a product with the quantity the shopper intends to buy.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart holds one session's in-progress selection. Lines are unique by
// product id and keep insertion order for display. Open tracks the
// cart panel's visibility and carries no business meaning.
type Cart struct {
	Lines []Line `json:"lines"`
	Open  bool   `json:"open"`
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges qty into an existing line for the same product or
// appends a new one. Quantities are clamped to the product's inventory
// count so no call site has to check the bound itself. Non-positive
// qty is a no-op. Adding opens the cart panel.
func (c *Cart) AddItem(p domain.Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity = clampToInventory(c.Lines[i].Quantity+qty, p)
			c.Open = true
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: clampToInventory(qty, p)})
	c.Open = true
}

// RemoveItem deletes the line for productID if present.
func (c *Cart) RemoveItem(productID uint) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity directly. Zero or negative
// quantity removes the line rather than erroring.
func (c *Cart) UpdateQuantity(productID uint, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Quantity = clampToInventory(qty, c.Lines[i].Product)
			return
		}
	}
}

// TotalItems returns the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of price*quantity across all lines, read
// from the product references currently in the cart. Prices are only
// frozen when an order snapshot is taken at checkout.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Product.Price * int64(l.Quantity)
	}
	return total
}

// Clear empties the cart. Called exactly once per checkout, after the
// order is confirmed.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) OpenPanel()   { c.Open = true }
func (c *Cart) ClosePanel()  { c.Open = false }
func (c *Cart) TogglePanel() { c.Open = !c.Open }

// clampToInventory caps qty at the product's inventory count. Products
// with no tracked inventory (count 0) are left unclamped.
func clampToInventory(qty int, p domain.Product) int {
	if p.InventoryCount > 0 && qty > p.InventoryCount {
		return p.InventoryCount
	}
	return qty
}
