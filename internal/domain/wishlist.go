package domain

import "time"

// Wishlist is the canonical product list. The O(1) membership index derived
// from it lives in the wishlist slice, not here.
type Wishlist struct {
	ID        string    `json:"id"`
	Products  []Product `json:"products"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Contains does a linear scan over the canonical list. Slices that need O(1)
// checks should consult their materialized index instead.
func (w *Wishlist) Contains(productID string) bool {
	if w == nil {
		return false
	}
	for i := range w.Products {
		if w.Products[i].ID == productID {
			return true
		}
	}
	return false
}
