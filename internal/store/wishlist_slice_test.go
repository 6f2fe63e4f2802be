package store

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// fakeWishlist is an in-memory backend for /wishlist*.
type fakeWishlist struct {
	mu       sync.Mutex
	products []domain.Product
}

func (f *fakeWishlist) snapshot() domain.Wishlist {
	return domain.Wishlist{ID: "w1", Products: append([]domain.Product(nil), f.products...)}
}

func (f *fakeWishlist) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wishlist", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(t, w, f.snapshot())
	})
	mux.HandleFunc("POST /wishlist", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			ProductID string `json:"productId"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		f.mu.Lock()
		defer f.mu.Unlock()
		exists := false
		for _, p := range f.products {
			if p.ID == in.ProductID {
				exists = true
			}
		}
		if !exists {
			f.products = append(f.products, domain.Product{ID: in.ProductID, Name: "Product " + in.ProductID})
		}
		writeData(t, w, f.snapshot())
	})
	mux.HandleFunc("DELETE /wishlist/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		kept := f.products[:0]
		for _, p := range f.products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		f.products = kept
		writeData(t, w, f.snapshot())
	})
	mux.HandleFunc("DELETE /wishlist", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.products = nil
		writeData(t, w, f.snapshot())
	})
	mux.HandleFunc("GET /wishlist/check/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		in := false
		for _, p := range f.products {
			if p.ID == r.PathValue("id") {
				in = true
			}
		}
		writeData(t, w, map[string]bool{"inWishlist": in})
	})
	return mux
}

// assertIndexConsistent checks both directions of the list/index contract:
// every listed product is true in the index, and every true index entry has a
// listed product behind it.
func assertIndexConsistent(t *testing.T, st WishlistState) {
	t.Helper()
	listed := make(map[string]bool)
	if st.Wishlist != nil {
		for _, p := range st.Wishlist.Products {
			listed[p.ID] = true
			assert.True(t, st.InWishlist[p.ID], "listed product %s missing from index", p.ID)
		}
	}
	for id, in := range st.InWishlist {
		if in {
			assert.True(t, listed[id], "index claims %s is wishlisted but the list disagrees", id)
		}
	}
}

func TestWishlist_IndexTracksListThroughMutations(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	steps := []struct {
		name string
		op   func() error
	}{
		{"fetch empty", func() error { return st.FetchWishlist(ctx) }},
		{"add p1", func() error { return st.AddToWishlist(ctx, "p1") }},
		{"add p2", func() error { return st.AddToWishlist(ctx, "p2") }},
		{"add p1 again", func() error { return st.AddToWishlist(ctx, "p1") }},
		{"remove p1", func() error { return st.RemoveFromWishlist(ctx, "p1") }},
		{"add p3", func() error { return st.AddToWishlist(ctx, "p3") }},
		{"refetch", func() error { return st.FetchWishlist(ctx) }},
		{"clear", func() error { return st.ClearWishlist(ctx) }},
	}

	for _, step := range steps {
		require.NoError(t, step.op(), step.name)
		assertIndexConsistent(t, st.Snapshot().Wishlist)
	}

	final := st.Snapshot().Wishlist
	assert.Empty(t, final.Wishlist.Products)
	assert.False(t, st.InWishlist("p1"))
	assert.False(t, st.InWishlist("p2"))
	assert.False(t, st.InWishlist("p3"))
}

func TestWishlist_CheckUpdatesOnlyTheIndex(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{products: []domain.Product{{ID: "p1"}, {ID: "p9"}}}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchWishlist(ctx))
	listBefore := st.Snapshot().Wishlist.Wishlist

	in, err := st.CheckWishlist(ctx, "p9")
	require.NoError(t, err)
	assert.True(t, in)

	in, err = st.CheckWishlist(ctx, "p404")
	require.NoError(t, err)
	assert.False(t, in)

	got := st.Snapshot().Wishlist
	assert.Same(t, listBefore, got.Wishlist, "standalone checks never touch the canonical list")
	assert.True(t, got.InWishlist["p9"])
	assert.False(t, got.InWishlist["p404"])
	assertIndexConsistent(t, got)
}

func TestWishlist_PublishedSnapshotsAreImmutable(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{products: []domain.Product{{ID: "p1"}}}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	require.NoError(t, st.FetchWishlist(ctx))
	before := st.Snapshot().Wishlist

	in, err := st.CheckWishlist(ctx, "p404")
	require.NoError(t, err)
	assert.False(t, in)

	// The check landed in the live index but must not reach back into a
	// snapshot handed out earlier.
	_, known := before.InWishlist["p404"]
	assert.False(t, known, "earlier snapshot grew an entry after the fact")

	after := st.Snapshot().Wishlist
	got, known := after.InWishlist["p404"]
	assert.True(t, known)
	assert.False(t, got)
}

func TestWishlist_CheckOfListedProductSkipsRoundTrip(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{products: []domain.Product{{ID: "p1"}}}
	var checks atomic.Int32
	mux := http.NewServeMux()
	mux.Handle("/", backend.handler(t))
	mux.HandleFunc("GET /wishlist/check/{id}", func(w http.ResponseWriter, r *http.Request) {
		checks.Add(1)
		writeData(t, w, map[string]bool{"inWishlist": false})
	})

	st := newTestStore(t, mux)
	ctx := context.Background()

	require.NoError(t, st.FetchWishlist(ctx))

	in, err := st.CheckWishlist(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, in)
	assert.Zero(t, checks.Load(), "a listed product is answered from the canonical list")

	in, err = st.CheckWishlist(ctx, "p404")
	require.NoError(t, err)
	assert.False(t, in)
	assert.EqualValues(t, 1, checks.Load(), "unlisted products still go to the server")
}

func TestWishlist_NegativeEntriesSurviveRefetch(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{products: []domain.Product{{ID: "p1"}}}
	st := newTestStore(t, backend.handler(t))
	ctx := context.Background()

	// Learn a negative answer for a product outside the list, then refetch.
	_, err := st.CheckWishlist(ctx, "p404")
	require.NoError(t, err)
	require.NoError(t, st.FetchWishlist(ctx))

	got := st.Snapshot().Wishlist
	in, known := got.InWishlist["p404"]
	assert.True(t, known, "a consistent negative entry is kept across refetch")
	assert.False(t, in)
	assert.True(t, got.InWishlist["p1"])
}

func TestWishlist_RejectedMutationKeepsIndex(t *testing.T) {
	t.Parallel()

	backend := &fakeWishlist{products: []domain.Product{{ID: "p1"}}}
	mux := http.NewServeMux()
	mux.Handle("/", backend.handler(t))
	mux.HandleFunc("POST /wishlist", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Product out of stock"}`))
	})

	st := newTestStore(t, mux)
	ctx := context.Background()

	require.NoError(t, st.FetchWishlist(ctx))
	require.Error(t, st.AddToWishlist(ctx, "p2"))

	got := st.Snapshot().Wishlist
	assert.Equal(t, "Product out of stock", got.Error)
	assert.True(t, got.InWishlist["p1"], "failed add leaves the prior index intact")
	assert.False(t, got.InWishlist["p2"])
	assertIndexConsistent(t, got)
}
