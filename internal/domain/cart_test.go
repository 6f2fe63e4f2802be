package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_DisplayTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cart    *Cart
		taxRate float64
		want    float64
	}{
		{
			name:    "subtotal plus tax minus discount",
			cart:    &Cart{TotalPrice: 100, DiscountAmount: 10},
			taxRate: 0.18,
			want:    108.00,
		},
		{
			name:    "no discount",
			cart:    &Cart{TotalPrice: 250},
			taxRate: 0.18,
			want:    295.00,
		},
		{
			name:    "zero tax rate",
			cart:    &Cart{TotalPrice: 99.99, DiscountAmount: 5},
			taxRate: 0,
			want:    94.99,
		},
		{
			name:    "rounds to cents",
			cart:    &Cart{TotalPrice: 33.33, DiscountAmount: 0.01},
			taxRate: 0.18,
			want:    39.32, // 33.33 + 6.00 - 0.01
		},
		{
			name:    "nil cart",
			cart:    nil,
			taxRate: 0.18,
			want:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, tt.cart.DisplayTotal(tt.taxRate), 1e-9)
		})
	}
}

func TestCart_DisplayTax(t *testing.T) {
	t.Parallel()

	cart := &Cart{TotalPrice: 100}
	assert.InDelta(t, 18.0, cart.DisplayTax(0.18), 1e-9)

	var nilCart *Cart
	assert.Zero(t, nilCart.DisplayTax(0.18))
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 3.30, Round2(3.2967), 1e-9)
	assert.InDelta(t, 0.1, Round2(0.1), 1e-9)
	assert.InDelta(t, -1.24, Round2(-1.235), 1e-9)
}
