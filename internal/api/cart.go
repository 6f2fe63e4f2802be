package api

import (
	"context"
	"net/http"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CartService talks to /cart*. Every mutation returns the full cart snapshot;
// the caller replaces its copy wholesale (no optimistic merge).
type CartService struct {
	client *Client
}

func (s *CartService) decodeCart(resp *domain.Response) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if err := decodeData(resp, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Get fetches the current cart.
func (s *CartService) Get(ctx context.Context, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/cart", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

type AddCartItemInput struct {
	ProductID        string            `json:"productId"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selectedVariants,omitempty"`
}

// AddItem adds a product to the cart.
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/cart", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

// UpdateItem changes an item's quantity.
func (s *CartService) UpdateItem(ctx context.Context, itemID string, input UpdateCartItemInput, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/cart/"+itemID, nil, input, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

// RemoveItem deletes one item.
func (s *CartService) RemoveItem(ctx context.Context, itemID string, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodDelete, "/cart/"+itemID, nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodDelete, "/cart", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

type applyCouponInput struct {
	Code string `json:"code"`
}

// ApplyCoupon attaches a coupon code; the server computes the discount.
func (s *CartService) ApplyCoupon(ctx context.Context, code string, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/cart/coupon", nil, applyCouponInput{Code: code}, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}

// RemoveCoupon detaches the applied coupon.
func (s *CartService) RemoveCoupon(ctx context.Context, opts ...Option) (*domain.Cart, error) {
	resp, err := s.client.do(ctx, http.MethodDelete, "/cart/coupon", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeCart(resp)
}
