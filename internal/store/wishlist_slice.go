package store

import (
	"context"
	"maps"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// WishlistState keeps the canonical product list plus InWishlist, a
// materialized membership index for O(1) checks. The index has a single
// update path (setWishlist / setMembership) so it can never drift from the
// list: every mutating operation rebuilds it in lockstep, and the standalone
// membership check touches only the index, never the list.
type WishlistState struct {
	Status
	Wishlist   *domain.Wishlist
	InWishlist map[string]bool
}

func initialWishlistState() WishlistState {
	return WishlistState{InWishlist: make(map[string]bool)}
}

// setWishlist replaces the canonical list and rebuilds the index. Negative
// entries learned from standalone checks are preserved when still consistent.
func (w *WishlistState) setWishlist(wl *domain.Wishlist) {
	index := make(map[string]bool, len(wl.Products))
	for id, in := range w.InWishlist {
		if !in {
			index[id] = false
		}
	}
	for i := range wl.Products {
		index[wl.Products[i].ID] = true
	}
	w.Wishlist = wl
	w.InWishlist = index
}

// setMembership records a standalone check result. Index only. The map is
// replaced, not written in place, so already-published snapshots keep the
// index they were handed.
func (w *WishlistState) setMembership(productID string, in bool) {
	index := maps.Clone(w.InWishlist)
	index[productID] = in
	w.InWishlist = index
}

func (s *Store) wishlistThunk(action string, call func() (*domain.Wishlist, error)) error {
	s.dispatch("wishlist", action+"/pending", func(st *State) {
		st.Wishlist.pending()
	})

	wl, err := call()
	if err != nil {
		s.dispatch("wishlist", action+"/rejected", func(st *State) {
			st.Wishlist.reject(err)
		})
		return err
	}

	s.dispatch("wishlist", action+"/fulfilled", func(st *State) {
		st.Wishlist.fulfill("")
		st.Wishlist.setWishlist(wl)
	})
	return nil
}

// FetchWishlist loads the full list.
func (s *Store) FetchWishlist(ctx context.Context) error {
	return s.wishlistThunk("fetch", func() (*domain.Wishlist, error) {
		return s.client.Wishlist.Get(ctx)
	})
}

// AddToWishlist adds a product; list and index move together.
func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	return s.wishlistThunk("add", func() (*domain.Wishlist, error) {
		return s.client.Wishlist.Add(ctx, productID)
	})
}

// RemoveFromWishlist removes a product; list and index move together.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	return s.wishlistThunk("remove", func() (*domain.Wishlist, error) {
		return s.client.Wishlist.Remove(ctx, productID)
	})
}

// ClearWishlist removes everything; list and index move together.
func (s *Store) ClearWishlist(ctx context.Context) error {
	return s.wishlistThunk("clear", func() (*domain.Wishlist, error) {
		return s.client.Wishlist.Clear(ctx)
	})
}

// CheckWishlist resolves membership for one product, typically one that is
// not loaded into the list yet. Updates only the index.
func (s *Store) CheckWishlist(ctx context.Context, productID string) (bool, error) {
	// A product already on the canonical list needs no round-trip.
	s.mu.Lock()
	listed := s.state.Wishlist.Wishlist.Contains(productID)
	s.mu.Unlock()
	if listed {
		return true, nil
	}

	in, err := s.client.Wishlist.Check(ctx, productID)
	if err != nil {
		s.dispatch("wishlist", "check/rejected", func(st *State) {
			st.Wishlist.reject(err)
		})
		return false, err
	}

	s.dispatch("wishlist", "check/fulfilled", func(st *State) {
		st.Wishlist.setMembership(productID, in)
	})
	return in, nil
}

// InWishlist answers the O(1) membership question components render from.
func (s *Store) InWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Wishlist.InWishlist[productID]
}
