package store

import (
	"context"
	"maps"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// ReviewState holds three views over overlapping data: the flat admin
// listing, the per-product cache, and the review currently open in detail.
// Every mutation fans out to whichever views are populated; missing one
// branch leaves stale data in that view. upsert/remove are the only write
// paths so the fan-out lives in exactly one place.
type ReviewState struct {
	Status
	Reviews    []domain.Review
	Pagination *domain.Pagination

	ProductReviews    map[string][]domain.Review
	ProductPagination map[string]*domain.Pagination

	CurrentReview *domain.Review
}

func initialReviewState() ReviewState {
	return ReviewState{
		ProductReviews:    make(map[string][]domain.Review),
		ProductPagination: make(map[string]*domain.Pagination),
	}
}

// setProductPage replaces one product's cached page. Map and page are
// replaced, never written in place, so already-published snapshots keep the
// views they were handed.
func (r *ReviewState) setProductPage(productID string, page []domain.Review) {
	cache := maps.Clone(r.ProductReviews)
	cache[productID] = page
	r.ProductReviews = cache
}

func (r *ReviewState) setProductPagination(productID string, p *domain.Pagination) {
	cache := maps.Clone(r.ProductPagination)
	cache[productID] = p
	r.ProductPagination = cache
}

// upsert applies one review to all three views. The flat list and the
// per-product cache are only touched when already populated for that scope;
// prepend controls whether a review unseen in a populated view is inserted
// (create) or ignored (update of an item outside the loaded page).
func (r *ReviewState) upsert(review *domain.Review, prepend bool) {
	if r.Reviews != nil {
		if i := indexOfReview(r.Reviews, review.ID); i >= 0 {
			flat := append([]domain.Review(nil), r.Reviews...)
			flat[i] = *review
			r.Reviews = flat
		} else if prepend {
			r.Reviews = append([]domain.Review{*review}, r.Reviews...)
		}
	}

	if cached, ok := r.ProductReviews[review.ProductID]; ok {
		if i := indexOfReview(cached, review.ID); i >= 0 {
			page := append([]domain.Review(nil), cached...)
			page[i] = *review
			r.setProductPage(review.ProductID, page)
		} else if prepend {
			r.setProductPage(review.ProductID, append([]domain.Review{*review}, cached...))
		}
	}

	if r.CurrentReview != nil && r.CurrentReview.ID == review.ID {
		cp := *review
		r.CurrentReview = &cp
	}
}

// remove deletes a review from every view it appears in.
func (r *ReviewState) remove(reviewID string) {
	if i := indexOfReview(r.Reviews, reviewID); i >= 0 {
		r.Reviews = append(append([]domain.Review(nil), r.Reviews[:i]...), r.Reviews[i+1:]...)
	}

	for productID, cached := range r.ProductReviews {
		if i := indexOfReview(cached, reviewID); i >= 0 {
			r.setProductPage(productID, append(append([]domain.Review(nil), cached[:i]...), cached[i+1:]...))
		}
	}

	if r.CurrentReview != nil && r.CurrentReview.ID == reviewID {
		r.CurrentReview = nil
	}
}

func indexOfReview(reviews []domain.Review, id string) int {
	for i := range reviews {
		if reviews[i].ID == id {
			return i
		}
	}
	return -1
}

// FetchProductReviews loads one product's review page into the cache.
func (s *Store) FetchProductReviews(ctx context.Context, productID string, filter api.ReviewFilter) error {
	s.dispatch("reviews", "fetchProduct/pending", func(st *State) {
		st.Reviews.pending()
	})

	reviews, pagination, err := s.client.Reviews.ListByProduct(ctx, productID, filter)
	if err != nil {
		s.dispatch("reviews", "fetchProduct/rejected", func(st *State) {
			st.Reviews.reject(err)
		})
		return err
	}

	s.dispatch("reviews", "fetchProduct/fulfilled", func(st *State) {
		st.Reviews.fulfill("")
		st.Reviews.setProductPage(productID, reviews)
		st.Reviews.setProductPagination(productID, pagination)
	})
	return nil
}

// FetchAllReviews loads the flat admin listing.
func (s *Store) FetchAllReviews(ctx context.Context, filter api.ReviewFilter) error {
	s.dispatch("reviews", "fetchAll/pending", func(st *State) {
		st.Reviews.pending()
	})

	reviews, pagination, err := s.client.Reviews.List(ctx, filter)
	if err != nil {
		s.dispatch("reviews", "fetchAll/rejected", func(st *State) {
			st.Reviews.reject(err)
		})
		return err
	}

	s.dispatch("reviews", "fetchAll/fulfilled", func(st *State) {
		st.Reviews.fulfill("")
		st.Reviews.Reviews = reviews
		st.Reviews.Pagination = pagination
	})
	return nil
}

func (s *Store) reviewThunk(action string, prepend bool, call func() (*domain.Review, error)) error {
	s.dispatch("reviews", action+"/pending", func(st *State) {
		st.Reviews.pending()
	})

	review, err := call()
	if err != nil {
		s.dispatch("reviews", action+"/rejected", func(st *State) {
			st.Reviews.reject(err)
		})
		return err
	}

	s.dispatch("reviews", action+"/fulfilled", func(st *State) {
		st.Reviews.fulfill("")
		st.Reviews.upsert(review, prepend)
	})
	return nil
}

// CreateReview posts a review and inserts it into every populated view.
func (s *Store) CreateReview(ctx context.Context, input api.CreateReviewInput) error {
	return s.reviewThunk("create", true, func() (*domain.Review, error) {
		return s.client.Reviews.Create(ctx, input)
	})
}

// UpdateReview edits a review in place across views.
func (s *Store) UpdateReview(ctx context.Context, reviewID string, input api.UpdateReviewInput) error {
	return s.reviewThunk("update", false, func() (*domain.Review, error) {
		return s.client.Reviews.Update(ctx, reviewID, input)
	})
}

// LikeReview toggles a like; the server returns the updated review.
func (s *Store) LikeReview(ctx context.Context, reviewID string) error {
	return s.reviewThunk("like", false, func() (*domain.Review, error) {
		return s.client.Reviews.Like(ctx, reviewID)
	})
}

// ApproveReview flips moderation state (admin).
func (s *Store) ApproveReview(ctx context.Context, reviewID string) error {
	return s.reviewThunk("approve", false, func() (*domain.Review, error) {
		return s.client.Reviews.Approve(ctx, reviewID)
	})
}

// RejectReview flips moderation state with a reason (admin).
func (s *Store) RejectReview(ctx context.Context, reviewID, reason string) error {
	return s.reviewThunk("reject", false, func() (*domain.Review, error) {
		return s.client.Reviews.Reject(ctx, reviewID, reason)
	})
}

// DeleteReview removes a review from the server and every local view. A 404
// means the review is already gone server-side, so the local views are still
// pruned.
func (s *Store) DeleteReview(ctx context.Context, reviewID string) error {
	s.dispatch("reviews", "delete/pending", func(st *State) {
		st.Reviews.pending()
	})

	if err := s.client.Reviews.Delete(ctx, reviewID); err != nil && !api.IsNotFound(err) {
		s.dispatch("reviews", "delete/rejected", func(st *State) {
			st.Reviews.reject(err)
		})
		return err
	}

	s.dispatch("reviews", "delete/fulfilled", func(st *State) {
		st.Reviews.fulfill("Review deleted")
		st.Reviews.remove(reviewID)
	})
	return nil
}

// OpenReview sets the detail view to one already-loaded review.
func (s *Store) OpenReview(review domain.Review) {
	s.dispatch("reviews", "open", func(st *State) {
		cp := review
		st.Reviews.CurrentReview = &cp
	})
}

// ProductRating derives the display aggregation for a product's cached page.
func (s *Store) ProductRating(productID string) domain.RatingSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SummarizeRatings(s.state.Reviews.ProductReviews[productID])
}
