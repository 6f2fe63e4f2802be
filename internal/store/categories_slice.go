package store

import (
	"context"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// CategoryState backs navigation (tree) and the admin category manager
// (flat page).
type CategoryState struct {
	Status
	Categories []domain.Category
	Tree       []domain.Category
	Pagination *domain.Pagination
	Current    *domain.Category
}

// FetchCategories loads a flat category page.
func (s *Store) FetchCategories(ctx context.Context, filter api.CategoryFilter) error {
	s.dispatch("categories", "fetch/pending", func(st *State) {
		st.Categories.pending()
	})

	categories, pagination, err := s.client.Categories.List(ctx, filter)
	if err != nil {
		s.dispatch("categories", "fetch/rejected", func(st *State) {
			st.Categories.reject(err)
		})
		return err
	}

	s.dispatch("categories", "fetch/fulfilled", func(st *State) {
		st.Categories.fulfill("")
		st.Categories.Categories = categories
		st.Categories.Pagination = pagination
	})
	return nil
}

// FetchCategoryTree loads the nested tree for navigation.
func (s *Store) FetchCategoryTree(ctx context.Context) error {
	s.dispatch("categories", "tree/pending", func(st *State) {
		st.Categories.pending()
	})

	tree, err := s.client.Categories.Tree(ctx)
	if err != nil {
		s.dispatch("categories", "tree/rejected", func(st *State) {
			st.Categories.reject(err)
		})
		return err
	}

	s.dispatch("categories", "tree/fulfilled", func(st *State) {
		st.Categories.fulfill("")
		st.Categories.Tree = tree
	})
	return nil
}

// CreateCategory adds a category (admin). The own-parent check happens in the
// service before any bytes hit the wire.
func (s *Store) CreateCategory(ctx context.Context, input api.CategoryInput) error {
	s.dispatch("categories", "create/pending", func(st *State) {
		st.Categories.pending()
	})

	category, err := s.client.Categories.Create(ctx, input)
	if err != nil {
		s.dispatch("categories", "create/rejected", func(st *State) {
			st.Categories.reject(err)
		})
		return err
	}

	s.dispatch("categories", "create/fulfilled", func(st *State) {
		st.Categories.fulfill("Category created")
		st.Categories.Categories = append([]domain.Category{*category}, st.Categories.Categories...)
		st.Categories.Current = category
	})
	return nil
}

// UpdateCategory edits a category across the loaded page (admin).
func (s *Store) UpdateCategory(ctx context.Context, categoryID string, input api.CategoryInput) error {
	s.dispatch("categories", "update/pending", func(st *State) {
		st.Categories.pending()
	})

	category, err := s.client.Categories.Update(ctx, categoryID, input)
	if err != nil {
		s.dispatch("categories", "update/rejected", func(st *State) {
			st.Categories.reject(err)
		})
		return err
	}

	s.dispatch("categories", "update/fulfilled", func(st *State) {
		st.Categories.fulfill("Category updated")
		if i := indexOfCategory(st.Categories.Categories, category.ID); i >= 0 {
			page := append([]domain.Category(nil), st.Categories.Categories...)
			page[i] = *category
			st.Categories.Categories = page
		}
		if st.Categories.Current != nil && st.Categories.Current.ID == category.ID {
			st.Categories.Current = category
		}
	})
	return nil
}

// DeleteCategory removes a category (admin). A 404 means the category is
// already gone, so the page is still pruned.
func (s *Store) DeleteCategory(ctx context.Context, categoryID string) error {
	s.dispatch("categories", "delete/pending", func(st *State) {
		st.Categories.pending()
	})

	if err := s.client.Categories.Delete(ctx, categoryID); err != nil && !api.IsNotFound(err) {
		s.dispatch("categories", "delete/rejected", func(st *State) {
			st.Categories.reject(err)
		})
		return err
	}

	s.dispatch("categories", "delete/fulfilled", func(st *State) {
		st.Categories.fulfill("Category deleted")
		if i := indexOfCategory(st.Categories.Categories, categoryID); i >= 0 {
			st.Categories.Categories = append(append([]domain.Category(nil), st.Categories.Categories[:i]...), st.Categories.Categories[i+1:]...)
		}
		if st.Categories.Current != nil && st.Categories.Current.ID == categoryID {
			st.Categories.Current = nil
		}
	})
	return nil
}

func indexOfCategory(categories []domain.Category, id string) int {
	for i := range categories {
		if categories[i].ID == id {
			return i
		}
	}
	return -1
}
