package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// ReviewService talks to /reviews*. Create/update carry images and go out as
// multipart; everything else is JSON.
type ReviewService struct {
	client *Client
}

// ReviewFilter narrows list queries. Zero values are omitted from the query
// string entirely.
type ReviewFilter struct {
	Page   int
	Limit  int
	Rating int
	Status string // pending, approved, rejected (admin listing)
	Sort   string // newest, oldest, rating_desc, rating_asc
}

func (f ReviewFilter) query() *queryBuilder {
	return newQuery().
		Int("page", f.Page).
		Int("limit", f.Limit).
		Int("rating", f.Rating).
		Str("status", f.Status).
		Str("sort", f.Sort)
}

// ListByProduct returns one product's reviews with pagination meta.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string, filter ReviewFilter, opts ...Option) ([]domain.Review, *domain.Pagination, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/reviews/product/"+productID, filter.query().Values(), nil, opts...)
	if err != nil {
		return nil, nil, err
	}
	var reviews []domain.Review
	if err := decodeData(resp, &reviews); err != nil {
		return nil, nil, err
	}
	return reviews, resp.Pagination, nil
}

// List returns the flat admin listing across all products.
func (s *ReviewService) List(ctx context.Context, filter ReviewFilter, opts ...Option) ([]domain.Review, *domain.Pagination, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/reviews", filter.query().Values(), nil, opts...)
	if err != nil {
		return nil, nil, err
	}
	var reviews []domain.Review
	if err := decodeData(resp, &reviews); err != nil {
		return nil, nil, err
	}
	return reviews, resp.Pagination, nil
}

// ReviewImage is one photo attached to a review.
type ReviewImage struct {
	Filename string
	Reader   io.Reader
}

type CreateReviewInput struct {
	ProductID string
	Rating    int
	Title     string
	Comment   string
	Images    []ReviewImage
}

// form builds the explicit multipart schema: scalar fields by name, every
// photo under the repeated "images" field. Field names must match the
// server's parser exactly.
func (in CreateReviewInput) form() *Form {
	f := NewForm().
		Set("product", in.ProductID).
		Set("rating", strconv.Itoa(in.Rating)).
		Set("title", in.Title).
		Set("comment", in.Comment)
	for _, img := range in.Images {
		f.AddFile("images", img.Filename, img.Reader)
	}
	return f
}

// Create posts a new review.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput, opts ...Option) (*domain.Review, error) {
	resp, err := s.client.doMultipart(ctx, http.MethodPost, "/reviews", input.form(), opts...)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{}
	if err := decodeData(resp, review); err != nil {
		return nil, err
	}
	return review, nil
}

type UpdateReviewInput struct {
	Rating  int
	Title   string
	Comment string
	Images  []ReviewImage
}

// Update edits an existing review. Scalars are always sent; an empty title or
// comment clears the field server-side.
func (s *ReviewService) Update(ctx context.Context, reviewID string, input UpdateReviewInput, opts ...Option) (*domain.Review, error) {
	f := NewForm().
		Set("rating", strconv.Itoa(input.Rating)).
		Set("title", input.Title).
		Set("comment", input.Comment)
	for _, img := range input.Images {
		f.AddFile("images", img.Filename, img.Reader)
	}

	resp, err := s.client.doMultipart(ctx, http.MethodPut, "/reviews/"+reviewID, f, opts...)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{}
	if err := decodeData(resp, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review.
func (s *ReviewService) Delete(ctx context.Context, reviewID string, opts ...Option) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/reviews/"+reviewID, nil, nil, opts...)
	return err
}

// Like toggles the caller's like and returns the updated review.
func (s *ReviewService) Like(ctx context.Context, reviewID string, opts ...Option) (*domain.Review, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/reviews/"+reviewID+"/like", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{}
	if err := decodeData(resp, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Approve marks a review approved (admin moderation).
func (s *ReviewService) Approve(ctx context.Context, reviewID string, opts ...Option) (*domain.Review, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/reviews/"+reviewID+"/approve", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{}
	if err := decodeData(resp, review); err != nil {
		return nil, err
	}
	return review, nil
}

type rejectReviewInput struct {
	Reason string `json:"reason"`
}

// Reject marks a review rejected with a reason (admin moderation).
func (s *ReviewService) Reject(ctx context.Context, reviewID, reason string, opts ...Option) (*domain.Review, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/reviews/"+reviewID+"/reject", nil, rejectReviewInput{Reason: reason}, opts...)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{}
	if err := decodeData(resp, review); err != nil {
		return nil, err
	}
	return review, nil
}
