package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	SalePrice   *float64  `json:"salePrice"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	VendorID    string    `json:"vendorId"`
	IsActive    bool      `json:"isActive"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EffectivePrice returns the sale price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}
