package cart

import (
	"testing"

	"letlalo-shop/internal/domain"

	"github.com/stretchr/testify/assert"
)

func product(id uint, price int64, inventory int) domain.Product {
	return domain.Product{ID: id, Name: "product", Price: price, InventoryCount: inventory}
}

func TestCart_AddItem(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*Cart)
		expectedLines int
		expectedItems int
		expectedPrice int64
	}{
		{
			name: "single add",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 10), 2)
			},
			expectedLines: 1,
			expectedItems: 2,
			expectedPrice: 20000,
		},
		{
			name: "same product merges into one line",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 10), 2)
				c.AddItem(product(1, 10000, 10), 3)
			},
			expectedLines: 1,
			expectedItems: 5,
			expectedPrice: 50000,
		},
		{
			name: "different products keep insertion order",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 10), 1)
				c.AddItem(product(2, 45000, 10), 1)
			},
			expectedLines: 2,
			expectedItems: 2,
			expectedPrice: 55000,
		},
		{
			name: "quantity clamped to inventory",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 3), 5)
			},
			expectedLines: 1,
			expectedItems: 3,
			expectedPrice: 30000,
		},
		{
			name: "merge clamps combined quantity",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 4), 3)
				c.AddItem(product(1, 10000, 4), 3)
			},
			expectedLines: 1,
			expectedItems: 4,
			expectedPrice: 40000,
		},
		{
			name: "non-positive quantity is a no-op",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 10), 0)
				c.AddItem(product(1, 10000, 10), -1)
			},
			expectedLines: 0,
			expectedItems: 0,
			expectedPrice: 0,
		},
		{
			name: "untracked inventory is not clamped",
			setup: func(c *Cart) {
				c.AddItem(product(1, 10000, 0), 99)
			},
			expectedLines: 1,
			expectedItems: 99,
			expectedPrice: 990000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.setup(c)

			assert.Len(t, c.Lines, tt.expectedLines)
			assert.Equal(t, tt.expectedItems, c.TotalItems())
			assert.Equal(t, tt.expectedPrice, c.TotalPrice())
		})
	}
}

func TestCart_AddItemOpensPanel(t *testing.T) {
	c := New()
	assert.False(t, c.Open)

	c.AddItem(product(1, 10000, 10), 1)
	assert.True(t, c.Open)
}

func TestCart_RemoveItem(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10000, 10), 2)
	c.AddItem(product(2, 45000, 10), 1)

	c.RemoveItem(1)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, uint(2), c.Lines[0].Product.ID)
	assert.Equal(t, 1, c.TotalItems())

	// Removing an absent product is a no-op.
	c.RemoveItem(99)
	assert.Len(t, c.Lines, 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		expectedLines int
		expectedItems int
	}{
		{name: "set directly", quantity: 7, expectedLines: 1, expectedItems: 7},
		{name: "zero removes the line", quantity: 0, expectedLines: 0, expectedItems: 0},
		{name: "negative removes the line", quantity: -3, expectedLines: 0, expectedItems: 0},
		{name: "clamped to inventory", quantity: 50, expectedLines: 1, expectedItems: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddItem(product(1, 10000, 10), 2)

			c.UpdateQuantity(1, tt.quantity)

			assert.Len(t, c.Lines, tt.expectedLines)
			assert.Equal(t, tt.expectedItems, c.TotalItems())
		})
	}
}

func TestCart_TotalsTrackMutationSequence(t *testing.T) {
	c := New()

	c.AddItem(product(1, 10000, 10), 2)
	c.AddItem(product(2, 45000, 10), 1)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(65000), c.TotalPrice())

	c.UpdateQuantity(1, 1)
	assert.Equal(t, 2, c.TotalItems())
	assert.Equal(t, int64(55000), c.TotalPrice())

	c.RemoveItem(2)
	assert.Equal(t, 1, c.TotalItems())
	assert.Equal(t, int64(10000), c.TotalPrice())

	c.UpdateQuantity(1, 0)
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, int64(0), c.TotalPrice())
	assert.True(t, c.IsEmpty())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10000, 10), 2)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, int64(0), c.TotalPrice())
}

func TestCart_PanelVisibility(t *testing.T) {
	c := New()

	c.OpenPanel()
	assert.True(t, c.Open)

	c.ClosePanel()
	assert.False(t, c.Open)

	c.TogglePanel()
	assert.True(t, c.Open)

	c.TogglePanel()
	assert.False(t, c.Open)
}
