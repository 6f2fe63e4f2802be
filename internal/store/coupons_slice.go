package store

import (
	"context"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CouponState backs the admin coupon manager and the checkout code box.
type CouponState struct {
	Status
	Coupons    []domain.Coupon
	Pagination *domain.Pagination
	Current    *domain.Coupon
	Validation *domain.CouponValidation
}

// FetchCoupons loads a coupon page (admin).
func (s *Store) FetchCoupons(ctx context.Context, filter api.CouponFilter) error {
	s.dispatch("coupons", "fetch/pending", func(st *State) {
		st.Coupons.pending()
	})

	coupons, pagination, err := s.client.Coupons.List(ctx, filter)
	if err != nil {
		s.dispatch("coupons", "fetch/rejected", func(st *State) {
			st.Coupons.reject(err)
		})
		return err
	}

	s.dispatch("coupons", "fetch/fulfilled", func(st *State) {
		st.Coupons.fulfill("")
		st.Coupons.Coupons = coupons
		st.Coupons.Pagination = pagination
	})
	return nil
}

// ValidateCoupon asks the server whether a code applies; the verdict is
// displayed, never recomputed.
func (s *Store) ValidateCoupon(ctx context.Context, code string, cartTotal float64) error {
	s.dispatch("coupons", "validate/pending", func(st *State) {
		st.Coupons.pending()
	})

	result, err := s.client.Coupons.Validate(ctx, code, cartTotal)
	if err != nil {
		s.dispatch("coupons", "validate/rejected", func(st *State) {
			st.Coupons.reject(err)
		})
		return err
	}

	s.dispatch("coupons", "validate/fulfilled", func(st *State) {
		st.Coupons.fulfill("")
		st.Coupons.Validation = result
	})
	return nil
}

// CreateCoupon adds a coupon and prepends it to the loaded page (admin).
func (s *Store) CreateCoupon(ctx context.Context, input api.CouponInput) error {
	s.dispatch("coupons", "create/pending", func(st *State) {
		st.Coupons.pending()
	})

	coupon, err := s.client.Coupons.Create(ctx, input)
	if err != nil {
		s.dispatch("coupons", "create/rejected", func(st *State) {
			st.Coupons.reject(err)
		})
		return err
	}

	s.dispatch("coupons", "create/fulfilled", func(st *State) {
		st.Coupons.fulfill("Coupon created")
		st.Coupons.Coupons = append([]domain.Coupon{*coupon}, st.Coupons.Coupons...)
		st.Coupons.Current = coupon
	})
	return nil
}

// UpdateCoupon edits a coupon in the loaded page (admin).
func (s *Store) UpdateCoupon(ctx context.Context, couponID string, input api.CouponInput) error {
	s.dispatch("coupons", "update/pending", func(st *State) {
		st.Coupons.pending()
	})

	coupon, err := s.client.Coupons.Update(ctx, couponID, input)
	if err != nil {
		s.dispatch("coupons", "update/rejected", func(st *State) {
			st.Coupons.reject(err)
		})
		return err
	}

	s.dispatch("coupons", "update/fulfilled", func(st *State) {
		st.Coupons.fulfill("Coupon updated")
		if i := indexOfCoupon(st.Coupons.Coupons, coupon.ID); i >= 0 {
			page := append([]domain.Coupon(nil), st.Coupons.Coupons...)
			page[i] = *coupon
			st.Coupons.Coupons = page
		}
		if st.Coupons.Current != nil && st.Coupons.Current.ID == coupon.ID {
			st.Coupons.Current = coupon
		}
	})
	return nil
}

// DeleteCoupon removes a coupon from the server and the loaded page (admin).
// A 404 means the coupon is already gone, so the page is still pruned.
func (s *Store) DeleteCoupon(ctx context.Context, couponID string) error {
	s.dispatch("coupons", "delete/pending", func(st *State) {
		st.Coupons.pending()
	})

	if err := s.client.Coupons.Delete(ctx, couponID); err != nil && !api.IsNotFound(err) {
		s.dispatch("coupons", "delete/rejected", func(st *State) {
			st.Coupons.reject(err)
		})
		return err
	}

	s.dispatch("coupons", "delete/fulfilled", func(st *State) {
		st.Coupons.fulfill("Coupon deleted")
		if i := indexOfCoupon(st.Coupons.Coupons, couponID); i >= 0 {
			st.Coupons.Coupons = append(append([]domain.Coupon(nil), st.Coupons.Coupons[:i]...), st.Coupons.Coupons[i+1:]...)
		}
		if st.Coupons.Current != nil && st.Coupons.Current.ID == couponID {
			st.Coupons.Current = nil
		}
	})
	return nil
}

func indexOfCoupon(coupons []domain.Coupon, id string) int {
	for i := range coupons {
		if coupons[i].ID == id {
			return i
		}
	}
	return -1
}
