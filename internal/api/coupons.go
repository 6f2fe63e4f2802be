package api

import (
	"context"
	"net/http"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CouponService talks to /coupons*.
type CouponService struct {
	client *Client
}

type CouponFilter struct {
	Page     int
	Limit    int
	Search   string
	IsActive *bool
	Type     string
}

func (f CouponFilter) query() *queryBuilder {
	return newQuery().
		Int("page", f.Page).
		Int("limit", f.Limit).
		Str("search", f.Search).
		BoolPtr("isActive", f.IsActive).
		Str("type", f.Type)
}

// List returns coupons with pagination meta (admin listing).
func (s *CouponService) List(ctx context.Context, filter CouponFilter, opts ...Option) ([]domain.Coupon, *domain.Pagination, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/coupons", filter.query().Values(), nil, opts...)
	if err != nil {
		return nil, nil, err
	}
	var coupons []domain.Coupon
	if err := decodeData(resp, &coupons); err != nil {
		return nil, nil, err
	}
	return coupons, resp.Pagination, nil
}

// Get returns one coupon by id.
func (s *CouponService) Get(ctx context.Context, couponID string, opts ...Option) (*domain.Coupon, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/coupons/"+couponID, nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	coupon := &domain.Coupon{}
	if err := decodeData(resp, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

type validateCouponInput struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cartTotal"`
}

// Validate asks the server whether a code applies to the given subtotal.
// The server's verdict is authoritative; the client only displays it.
func (s *CouponService) Validate(ctx context.Context, code string, cartTotal float64, opts ...Option) (*domain.CouponValidation, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/coupons/validate", nil, validateCouponInput{Code: code, CartTotal: cartTotal}, opts...)
	if err != nil {
		return nil, err
	}
	result := &domain.CouponValidation{}
	if err := decodeData(resp, result); err != nil {
		return nil, err
	}
	return result, nil
}

type CouponInput struct {
	Code         string  `json:"code"`
	Type         string  `json:"type"`
	Value        float64 `json:"value"`
	MinPurchase  float64 `json:"minPurchase"`
	MaxDiscount  float64 `json:"maxDiscount"`
	StartDate    string  `json:"startDate,omitempty"` // ISO8601
	EndDate      string  `json:"endDate,omitempty"`   // ISO8601
	IsActive     bool    `json:"isActive"`
	UsageLimit   int     `json:"usageLimit"`
	PerUserLimit int     `json:"perUserLimit"`
}

// Create adds a coupon (admin).
func (s *CouponService) Create(ctx context.Context, input CouponInput, opts ...Option) (*domain.Coupon, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/coupons", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	coupon := &domain.Coupon{}
	if err := decodeData(resp, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update edits a coupon (admin).
func (s *CouponService) Update(ctx context.Context, couponID string, input CouponInput, opts ...Option) (*domain.Coupon, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/coupons/"+couponID, nil, input, opts...)
	if err != nil {
		return nil, err
	}
	coupon := &domain.Coupon{}
	if err := decodeData(resp, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon (admin).
func (s *CouponService) Delete(ctx context.Context, couponID string, opts ...Option) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/coupons/"+couponID, nil, nil, opts...)
	return err
}
