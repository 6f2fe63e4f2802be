package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CategoryService talks to /categories*. Create/update carry an optional
// image and go out as multipart.
type CategoryService struct {
	client *Client
}

type CategoryFilter struct {
	Page     int
	Limit    int
	Search   string
	ParentID string
	IsActive *bool
}

func (f CategoryFilter) query() *queryBuilder {
	return newQuery().
		Int("page", f.Page).
		Int("limit", f.Limit).
		Str("search", f.Search).
		Str("parent", f.ParentID).
		BoolPtr("isActive", f.IsActive)
}

// List returns a flat category page.
func (s *CategoryService) List(ctx context.Context, filter CategoryFilter, opts ...Option) ([]domain.Category, *domain.Pagination, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/categories", filter.query().Values(), nil, opts...)
	if err != nil {
		return nil, nil, err
	}
	var categories []domain.Category
	if err := decodeData(resp, &categories); err != nil {
		return nil, nil, err
	}
	return categories, resp.Pagination, nil
}

// Tree returns the nested category tree.
func (s *CategoryService) Tree(ctx context.Context, opts ...Option) ([]domain.Category, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/categories/tree", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	var tree []domain.Category
	if err := decodeData(resp, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Get returns one category by id.
func (s *CategoryService) Get(ctx context.Context, categoryID string, opts ...Option) (*domain.Category, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/categories/"+categoryID, nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	category := &domain.Category{}
	if err := decodeData(resp, category); err != nil {
		return nil, err
	}
	return category, nil
}

type CategoryInput struct {
	ID       string // set on update, used for the own-parent check
	Name     string
	ParentID *string
	IsActive bool

	ImageFilename string
	ImageReader   io.Reader
}

// form copies every scalar and attaches the image under the singular "image"
// field, matching the server's parser.
func (in CategoryInput) form() *Form {
	f := NewForm().
		Set("name", in.Name).
		Set("isActive", strconv.FormatBool(in.IsActive))
	if in.ParentID != nil {
		f.Set("parent", *in.ParentID)
	}
	if in.ImageReader != nil {
		f.AddFile("image", in.ImageFilename, in.ImageReader)
	}
	return f
}

func (in CategoryInput) validate() error {
	c := domain.Category{ID: in.ID, ParentID: in.ParentID}
	return c.ValidateParent()
}

// Create adds a category (admin). The shallow own-parent invariant is checked
// client-side before submit.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput, opts ...Option) (*domain.Category, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	resp, err := s.client.doMultipart(ctx, http.MethodPost, "/categories", input.form(), opts...)
	if err != nil {
		return nil, err
	}
	category := &domain.Category{}
	if err := decodeData(resp, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update edits a category (admin).
func (s *CategoryService) Update(ctx context.Context, categoryID string, input CategoryInput, opts ...Option) (*domain.Category, error) {
	input.ID = categoryID
	if err := input.validate(); err != nil {
		return nil, err
	}
	resp, err := s.client.doMultipart(ctx, http.MethodPut, "/categories/"+categoryID, input.form(), opts...)
	if err != nil {
		return nil, err
	}
	category := &domain.Category{}
	if err := decodeData(resp, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category (admin).
func (s *CategoryService) Delete(ctx context.Context, categoryID string, opts ...Option) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/categories/"+categoryID, nil, nil, opts...)
	return err
}
