package store

import (
	"context"
	"errors"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/session"
)

// AuthState holds the current session. Zero value = logged out.
type AuthState struct {
	Status
	Session       *domain.Session
	Authenticated bool
}

// Login signs in and replaces the auth slice with the new session.
func (s *Store) Login(ctx context.Context, input api.LoginInput) error {
	s.dispatch("auth", "login/pending", func(st *State) {
		st.Auth.pending()
	})

	sess, err := s.client.Auth.Login(ctx, input)
	if err != nil {
		s.dispatch("auth", "login/rejected", func(st *State) {
			st.Auth.reject(err)
		})
		return err
	}

	s.dispatch("auth", "login/fulfilled", func(st *State) {
		st.Auth.fulfill("Logged in")
		st.Auth.Session = sess
		st.Auth.Authenticated = true
	})
	return nil
}

// Register creates an account; a successful register is also a login.
func (s *Store) Register(ctx context.Context, input api.RegisterInput) error {
	s.dispatch("auth", "register/pending", func(st *State) {
		st.Auth.pending()
	})

	sess, err := s.client.Auth.Register(ctx, input)
	if err != nil {
		s.dispatch("auth", "register/rejected", func(st *State) {
			st.Auth.reject(err)
		})
		return err
	}

	s.dispatch("auth", "register/fulfilled", func(st *State) {
		st.Auth.fulfill("Account created")
		st.Auth.Session = sess
		st.Auth.Authenticated = true
	})
	return nil
}

// Logout destroys the session and atomically resets auth, cart and wishlist.
// Stale cart/wishlist data must never survive into the next session on a
// shared device, so the reset is one composite transition, not three.
func (s *Store) Logout(ctx context.Context) error {
	err := s.client.Auth.Logout(ctx)
	s.resetSession("auth/logout")
	return err
}

// RestoreSession loads the persisted session on boot. A missing session is
// not an error; the slice just stays logged out.
func (s *Store) RestoreSession() error {
	sess, err := s.client.Session().Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil
		}
		return err
	}

	s.dispatch("auth", "restore/fulfilled", func(st *State) {
		st.Auth.fulfill("Session restored")
		st.Auth.Session = sess
		st.Auth.Authenticated = true
	})
	return nil
}

// RefreshProfile re-fetches the user profile into the current session.
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.dispatch("auth", "profile/pending", func(st *State) {
		st.Auth.pending()
	})

	user, err := s.client.Auth.Me(ctx)
	if err != nil {
		s.dispatch("auth", "profile/rejected", func(st *State) {
			st.Auth.reject(err)
		})
		return err
	}

	s.dispatch("auth", "profile/fulfilled", func(st *State) {
		st.Auth.fulfill("")
		if st.Auth.Session != nil {
			st.Auth.Session.User = *user
		}
	})
	return nil
}
