package domain

import "time"

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

type Coupon struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	Type         string     `json:"type"` // percentage, fixed
	Value        float64    `json:"value"`
	MinPurchase  float64    `json:"minPurchase"`
	MaxDiscount  float64    `json:"maxDiscount"` // 0 means uncapped
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	IsActive     bool       `json:"isActive"`
	UsageLimit   int        `json:"usageLimit"`
	PerUserLimit int        `json:"perUserLimit"`
	UsedCount    int        `json:"usedCount"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// UsableAt reports whether the coupon is inside its time window, active and
// under its usage cap. The server enforces this authoritatively; the client
// mirrors it so expired codes can be greyed out before a round-trip.
func (c *Coupon) UsableAt(now time.Time) bool {
	if c == nil || !c.IsActive {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return false
	}
	return true
}

// DiscountFor mirrors the server's discount computation for display.
// Percentage discounts never exceed MaxDiscount when one is declared; fixed
// discounts never exceed the subtotal. Returns 0 below the minimum purchase.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	if c == nil || subtotal <= 0 {
		return 0
	}
	if c.MinPurchase > 0 && subtotal < c.MinPurchase {
		return 0
	}

	var discount float64
	switch c.Type {
	case CouponTypePercentage:
		discount = subtotal * c.Value / 100
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
	case CouponTypeFixed:
		discount = c.Value
		if discount > subtotal {
			discount = subtotal
		}
	default:
		return 0
	}

	return Round2(discount)
}

// CouponValidation is the server's answer to a validate-code request.
type CouponValidation struct {
	Coupon   Coupon  `json:"coupon"`
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"` // inactive, expired, min_purchase, usage_limit
}
