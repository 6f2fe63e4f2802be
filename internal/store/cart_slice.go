package store

import (
	"context"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CartState mirrors the last-known-good server cart. Every fulfilled mutation
// replaces the snapshot wholesale.
type CartState struct {
	Status
	Cart *domain.Cart
}

// DisplayTotal derives the total shown at checkout: subtotal + tax - discount.
func (s *Store) DisplayTotal() float64 {
	st := s.Snapshot()
	return st.Cart.Cart.DisplayTotal(s.taxRate)
}

func (s *Store) cartThunk(action string, call func() (*domain.Cart, error)) error {
	s.dispatch("cart", action+"/pending", func(st *State) {
		st.Cart.pending()
	})

	cart, err := call()
	if err != nil {
		// Rejection keeps the prior snapshot; only the flags change.
		s.dispatch("cart", action+"/rejected", func(st *State) {
			st.Cart.reject(err)
		})
		return err
	}

	s.dispatch("cart", action+"/fulfilled", func(st *State) {
		st.Cart.fulfill("")
		st.Cart.Cart = cart
	})
	return nil
}

// FetchCart loads the cart snapshot.
func (s *Store) FetchCart(ctx context.Context) error {
	return s.cartThunk("fetch", func() (*domain.Cart, error) {
		return s.client.Cart.Get(ctx)
	})
}

// AddToCart adds a product and replaces the snapshot.
func (s *Store) AddToCart(ctx context.Context, input api.AddCartItemInput) error {
	return s.cartThunk("add", func() (*domain.Cart, error) {
		return s.client.Cart.AddItem(ctx, input)
	})
}

// UpdateCartItem changes a quantity and replaces the snapshot.
func (s *Store) UpdateCartItem(ctx context.Context, itemID string, quantity int) error {
	return s.cartThunk("update", func() (*domain.Cart, error) {
		return s.client.Cart.UpdateItem(ctx, itemID, api.UpdateCartItemInput{Quantity: quantity})
	})
}

// RemoveCartItem deletes one item and replaces the snapshot.
func (s *Store) RemoveCartItem(ctx context.Context, itemID string) error {
	return s.cartThunk("remove", func() (*domain.Cart, error) {
		return s.client.Cart.RemoveItem(ctx, itemID)
	})
}

// ClearCart empties the cart server-side and replaces the snapshot.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.cartThunk("clear", func() (*domain.Cart, error) {
		return s.client.Cart.Clear(ctx)
	})
}

// ApplyCoupon attaches a coupon code; discount comes back server-computed.
func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	return s.cartThunk("applyCoupon", func() (*domain.Cart, error) {
		return s.client.Cart.ApplyCoupon(ctx, code)
	})
}

// RemoveCoupon detaches the applied coupon.
func (s *Store) RemoveCoupon(ctx context.Context) error {
	return s.cartThunk("removeCoupon", func() (*domain.Cart, error) {
		return s.client.Cart.RemoveCoupon(ctx)
	})
}
