// Package store owns the whole client-side application state. Every mutation
// goes through dispatch, which applies exactly one transition at a time under
// the store lock; that atomicity is the only concurrency guarantee, matching
// a single-threaded reducer. Cross-slice effects (logout wiping cart and
// wishlist) are single composite transitions, never two dispatches.
package store

import (
	"sync"
	"time"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/cache"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

// Status is the transient request-tracking block every slice carries.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (s *Status) pending() {
	s.Loading = true
	s.Error = ""
	s.Success = false
	s.Message = ""
}

func (s *Status) reject(err error) {
	s.Loading = false
	s.Success = false
	s.Error = api.MessageOf(err)
}

func (s *Status) fulfill(message string) {
	s.Loading = false
	s.Success = true
	s.Error = ""
	s.Message = message
}

// State is the full application state: one field per slice.
type State struct {
	Auth       AuthState
	Cart       CartState
	Wishlist   WishlistState
	Reviews    ReviewState
	Coupons    CouponState
	Categories CategoryState
	Dashboard  DashboardState
}

// Options configures store behavior that mirrors server-declared values.
type Options struct {
	// TaxRate is the display-only mirror of the server's tax rate.
	TaxRate float64
	// DashboardTTL bounds how long analytics snapshots are reused.
	DashboardTTL time.Duration
}

// Store is the single coordinator. All reads go through Snapshot, all writes
// through dispatch.
type Store struct {
	mu    sync.Mutex
	state State

	client  *api.Client
	taxRate float64

	statsCache cache.CacheService
	statsTTL   time.Duration

	// pubMu serializes subscriber notification in transition order. Acquired
	// before mu is released so two concurrent dispatches can never deliver
	// their snapshots swapped.
	pubMu sync.Mutex

	subMu sync.Mutex
	subs  map[int]func(State)
	nextS int
}

func New(client *api.Client, opts Options) *Store {
	ttl := opts.DashboardTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	s := &Store{
		client:     client,
		taxRate:    opts.TaxRate,
		statsCache: cache.NewMemoryCache(ttl, 2*ttl),
		statsTTL:   ttl,
		subs:       make(map[int]func(State)),
	}
	s.state = initialState()
	return s
}

func initialState() State {
	return State{
		Wishlist: initialWishlistState(),
		Reviews:  initialReviewState(),
	}
}

// dispatch applies one transition atomically and notifies subscribers with
// the resulting snapshot, in transition order. Subscribers must not dispatch
// from their callback.
func (s *Store) dispatch(slice, action string, fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	s.pubMu.Lock()
	s.mu.Unlock()
	defer s.pubMu.Unlock()

	logger.StateTransition(slice, action)
	s.publish(snapshot)
}

// Snapshot returns a copy of the current state. Every transition replaces the
// containers it touches instead of mutating them, so a snapshot never changes
// after it is handed out.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every transition. Returns an
// unsubscribe func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextS
	s.nextS++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(snapshot State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// resetSession is the composite transition behind logout and 401 teardown:
// auth, cart and wishlist reset in ONE dispatch so no stale data from the
// previous session is ever observable between transitions.
func (s *Store) resetSession(action string) {
	s.dispatch("auth", action, func(st *State) {
		st.Auth = AuthState{}
		st.Cart = CartState{}
		st.Wishlist = initialWishlistState()
	})
}

// HandleSessionExpired is wired into the transport's OnSessionExpired hook.
// The transport has already cleared durable storage by the time this runs.
func (s *Store) HandleSessionExpired() {
	s.resetSession("auth/sessionExpired")
}
