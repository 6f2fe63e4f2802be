package api

import (
	"context"
	"net/http"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// WishlistService talks to /wishlist*.
type WishlistService struct {
	client *Client
}

func (s *WishlistService) decodeWishlist(resp *domain.Response) (*domain.Wishlist, error) {
	wl := &domain.Wishlist{}
	if err := decodeData(resp, wl); err != nil {
		return nil, err
	}
	return wl, nil
}

// Get fetches the full wishlist.
func (s *WishlistService) Get(ctx context.Context, opts ...Option) (*domain.Wishlist, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/wishlist", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeWishlist(resp)
}

type wishlistItemInput struct {
	ProductID string `json:"productId"`
}

// Add puts a product on the wishlist and returns the updated list.
func (s *WishlistService) Add(ctx context.Context, productID string, opts ...Option) (*domain.Wishlist, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/wishlist", nil, wishlistItemInput{ProductID: productID}, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeWishlist(resp)
}

// Remove takes a product off the wishlist and returns the updated list.
func (s *WishlistService) Remove(ctx context.Context, productID string, opts ...Option) (*domain.Wishlist, error) {
	resp, err := s.client.do(ctx, http.MethodDelete, "/wishlist/"+productID, nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeWishlist(resp)
}

// Clear removes every product.
func (s *WishlistService) Clear(ctx context.Context, opts ...Option) (*domain.Wishlist, error) {
	resp, err := s.client.do(ctx, http.MethodDelete, "/wishlist", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return s.decodeWishlist(resp)
}

type checkResult struct {
	InWishlist bool `json:"inWishlist"`
}

// Check asks whether a single product is on the wishlist without fetching the
// whole list. Used for products not yet loaded client-side.
func (s *WishlistService) Check(ctx context.Context, productID string, opts ...Option) (bool, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/wishlist/check/"+productID, nil, nil, opts...)
	if err != nil {
		return false, err
	}
	var result checkResult
	if err := decodeData(resp, &result); err != nil {
		return false, err
	}
	return result.InWishlist, nil
}
