package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// AuthService talks to /auth/* and /user/*.
type AuthService struct {
	client *Client
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the new session. A 401/400 here is
// a credentials problem, never a session teardown.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, opts ...Option) (*domain.Session, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/auth/register", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{}
	if err := decodeData(resp, sess); err != nil {
		return nil, err
	}
	return sess, s.persist(sess)
}

// Login exchanges credentials for a session.
func (s *AuthService) Login(ctx context.Context, input LoginInput, opts ...Option) (*domain.Session, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{}
	if err := decodeData(resp, sess); err != nil {
		return nil, err
	}
	return sess, s.persist(sess)
}

func (s *AuthService) persist(sess *domain.Session) error {
	if err := s.client.session.Save(sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Logout tells the backend to drop the refresh token, then destroys local
// state regardless of the server's answer.
func (s *AuthService) Logout(ctx context.Context) error {
	_, reqErr := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, Silent())
	if err := s.client.session.Clear(); err != nil {
		return err
	}
	return reqErr
}

// Me fetches the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, opts ...Option) (*domain.User, error) {
	resp, err := s.client.do(ctx, http.MethodGet, "/auth/me", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	user := &domain.User{}
	if err := decodeData(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// UpdateProfile updates the authenticated user's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput, opts ...Option) (*domain.User, error) {
	resp, err := s.client.do(ctx, http.MethodPut, "/auth/profile", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	user := &domain.User{}
	if err := decodeData(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}
