package domain

import "time"

// Cart is the client-held snapshot of the server cart. Every mutation is a
// full round-trip; the response replaces the whole snapshot.
type Cart struct {
	ID             string     `json:"id"`
	Items          []CartItem `json:"items"`
	TotalItems     int        `json:"totalItems"`
	TotalPrice     float64    `json:"totalPrice"`
	Coupon         *Coupon    `json:"coupon"`
	DiscountAmount float64    `json:"discountAmount"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID               string            `json:"id"`
	ProductID        string            `json:"productId"`
	Product          Product           `json:"product"`
	Quantity         int               `json:"quantity"`
	Price            float64           `json:"price"` // Effective price at add time
	SelectedVariants map[string]string `json:"selectedVariants"`
}

// DisplayTotal mirrors the server's order total for display:
// subtotal + tax - discount, rounded to cents. The server recomputes this
// authoritatively at checkout.
func (c *Cart) DisplayTotal(taxRate float64) float64 {
	if c == nil {
		return 0
	}
	tax := Round2(c.TotalPrice * taxRate)
	return Round2(c.TotalPrice + tax - c.DiscountAmount)
}

// DisplayTax returns the tax amount shown alongside the total.
func (c *Cart) DisplayTax(taxRate float64) float64 {
	if c == nil {
		return 0
	}
	return Round2(c.TotalPrice * taxRate)
}
