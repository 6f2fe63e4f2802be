package store

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// fakeCategories is an in-memory backend for /categories*. Create/update are
// multipart per the real API.
type fakeCategories struct {
	mu         sync.Mutex
	categories []domain.Category
	nextID     int
}

func (f *fakeCategories) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writePage(t, w, f.categories, &domain.Pagination{Current: 1, Total: 1, Count: len(f.categories)})
	})
	mux.HandleFunc("GET /categories/tree", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var roots []domain.Category
		for _, c := range f.categories {
			if c.ParentID == nil {
				root := c
				for _, child := range f.categories {
					if child.ParentID != nil && *child.ParentID == c.ID {
						root.Children = append(root.Children, child)
					}
				}
				roots = append(roots, root)
			}
		}
		writeData(t, w, roots)
	})
	mux.HandleFunc("POST /categories", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(10<<20))

		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		category := domain.Category{
			ID:       "cat" + string(rune('0'+f.nextID)),
			Name:     r.FormValue("name"),
			IsActive: r.FormValue("isActive") == "true",
		}
		if parent := r.FormValue("parent"); parent != "" {
			category.ParentID = &parent
		}
		f.categories = append(f.categories, category)
		writeData(t, w, category)
	})
	mux.HandleFunc("PUT /categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(10<<20))

		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.categories {
			if f.categories[i].ID == r.PathValue("id") {
				f.categories[i].Name = r.FormValue("name")
				f.categories[i].IsActive = r.FormValue("isActive") == "true"
				writeData(t, w, f.categories[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Category not found"}`))
	})
	mux.HandleFunc("DELETE /categories/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.categories[:0]
		for _, c := range f.categories {
			if c.ID != r.PathValue("id") {
				kept = append(kept, c)
			}
		}
		f.categories = kept
		writeData(t, w, nil)
	})
	return mux
}

func electronics() []domain.Category {
	parent := "cat1"
	return []domain.Category{
		{ID: "cat1", Name: "Electronics", IsActive: true},
		{ID: "cat2", Name: "Audio", ParentID: &parent, IsActive: true},
	}
}

func TestCategories_TreeAndFlatAreIndependentViews(t *testing.T) {
	t.Parallel()

	backend := &fakeCategories{categories: electronics()}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchCategoryTree(ctx))
	got := st.Snapshot().Categories
	require.Len(t, got.Tree, 1)
	assert.Equal(t, "Electronics", got.Tree[0].Name)
	require.Len(t, got.Tree[0].Children, 1)
	assert.Equal(t, "Audio", got.Tree[0].Children[0].Name)
	assert.Empty(t, got.Categories, "tree fetch does not populate the flat page")

	require.NoError(t, st.FetchCategories(ctx, api.CategoryFilter{}))
	got = st.Snapshot().Categories
	assert.Len(t, got.Categories, 2)
	require.Len(t, got.Tree, 1, "flat fetch keeps the loaded tree")
}

func TestCategories_AdminCRUD(t *testing.T) {
	t.Parallel()

	backend := &fakeCategories{categories: electronics()}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchCategories(ctx, api.CategoryFilter{}))

	parent := "cat1"
	require.NoError(t, st.CreateCategory(ctx, api.CategoryInput{
		Name: "Cables", ParentID: &parent, IsActive: true,
	}))
	got := st.Snapshot().Categories
	require.Len(t, got.Categories, 3)
	assert.Equal(t, "Cables", got.Categories[0].Name)
	require.NotNil(t, got.Current)
	created := got.Current.ID

	require.NoError(t, st.UpdateCategory(ctx, created, api.CategoryInput{
		Name: "Cables & Adapters", IsActive: true,
	}))
	got = st.Snapshot().Categories
	assert.Equal(t, "Cables & Adapters", got.Categories[0].Name)

	require.NoError(t, st.DeleteCategory(ctx, created))
	got = st.Snapshot().Categories
	assert.Len(t, got.Categories, 2)
	assert.Nil(t, got.Current)
}

func TestCategories_OwnParentRejectedBeforeSubmit(t *testing.T) {
	t.Parallel()

	var hits int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeData(t, w, nil)
	})
	st := newTestStore(t, mux)

	self := "cat1"
	err := st.UpdateCategory(context.Background(), "cat1", api.CategoryInput{
		Name: "Electronics", ParentID: &self, IsActive: true,
	})
	require.ErrorIs(t, err, domain.ErrCategoryOwnParent)
	assert.Zero(t, hits, "invalid input never reaches the wire")
	assert.Equal(t, domain.ErrCategoryOwnParent.Error(), st.Snapshot().Categories.Error)
}
