package services

import (
	"letlalo-shop/internal/cart"
	"letlalo-shop/internal/domain"
)

func testProduct(id uint, name string, price int64, inventory int) domain.Product {
	return domain.Product{
		ID:             id,
		Name:           name,
		Price:          price,
		Currency:       "NGN",
		Images:         domain.StringSlice{"https://img.example/" + name + ".jpg"},
		InventoryCount: inventory,
		IsVisible:      true,
		Slug:           GenerateSlug(name),
	}
}

func testCart(lines ...cart.Line) *cart.Cart {
	c := cart.New()
	for _, l := range lines {
		c.AddItem(l.Product, l.Quantity)
	}
	return c
}

func strPtr(s string) *string {
	return &s
}

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "+2348012345678",
		AddressLine1:  "12 Marina Road",
		City:          "Lagos",
		State:         "Lagos State",
	}
}
